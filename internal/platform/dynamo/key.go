package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names of the single table's composite key.
const (
	AttrPrimaryKey   = "primary_key"
	AttrSecondaryKey = "secondary_key"
)

// Key returns the composite key for a point lookup.
func Key(primaryKey, secondaryKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPrimaryKey:   &types.AttributeValueMemberS{Value: primaryKey},
		AttrSecondaryKey: &types.AttributeValueMemberS{Value: secondaryKey},
	}
}

// UserKey returns the key of a user's own record, which uses the user id for
// both halves of the composite key.
func UserKey(userID string) map[string]types.AttributeValue {
	return Key(userID, userID)
}

// KeyRange describes a keyset range scan over one owner's records whose
// secondary key carries a given prefix. Cursor, when non-empty, restarts the
// scan strictly after (forward) or before (backward) the given secondary key.
type KeyRange struct {
	PartitionKey string
	Prefix       string
	Cursor       string
	ScanForward  bool
}

// Condition renders the range as a DynamoDB key condition expression with its
// attribute values. Lexicographic order of the sortable ids makes the string
// comparison order match creation order.
func (r KeyRange) Condition() (string, map[string]types.AttributeValue) {
	expr := fmt.Sprintf("%s = :primaryKeyValue AND begins_with(%s, :keyPrefix)", AttrPrimaryKey, AttrSecondaryKey)
	values := map[string]types.AttributeValue{
		":primaryKeyValue": &types.AttributeValueMemberS{Value: r.PartitionKey},
		":keyPrefix":       &types.AttributeValueMemberS{Value: r.Prefix},
	}

	if r.Cursor != "" {
		op := ">"
		if !r.ScanForward {
			op = "<"
		}
		expr += fmt.Sprintf(" AND %s %s :secondaryKeyValue", AttrSecondaryKey, op)
		values[":secondaryKeyValue"] = &types.AttributeValueMemberS{Value: r.Cursor}
	}

	return expr, values
}

// ContinuationKey extracts the secondary key from a query's LastEvaluatedKey.
// It returns "" when the result was not truncated.
func ContinuationKey(lastEvaluatedKey map[string]types.AttributeValue) string {
	if lastEvaluatedKey == nil {
		return ""
	}
	sk, ok := lastEvaluatedKey[AttrSecondaryKey].(*types.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return sk.Value
}

package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// substringRegex builds a case-insensitive literal-substring regex for term.
// QuoteMeta keeps user input literal so regex metacharacters cannot change
// the match.
func substringRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

// fieldsMatch builds an $or predicate matching term as a case-insensitive
// substring of any of the given fields.
func fieldsMatch(term string, fields ...string) bson.M {
	re := substringRegex(term)
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: re})
	}
	return bson.M{"$or": or}
}

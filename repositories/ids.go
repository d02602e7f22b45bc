package repositories

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidID reports whether id is a well-formed ObjectID hex string.
// Handlers check this before any update reaches storage.
func IsValidID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))
	assert.ErrorIs(t, TranslateError(mongo.ErrNoDocuments), ErrNotFound)
	assert.ErrorIs(t, TranslateError(fmt.Errorf("find: %w", mongo.ErrNoDocuments)), ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, TranslateError(dup), ErrDuplicate)

	other := errors.New("socket closed")
	assert.Equal(t, other, TranslateError(other))
}

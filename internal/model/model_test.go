package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketapi/internal/repository"
)

func TestEditFieldsSparsePatch(t *testing.T) {
	read := true
	u := MessageUpdate{IsRead: &read}

	f := u.EditFields(true)

	// Only the provided field is applied; text stays untouched.
	assert.Equal(t, repository.Fields{"is_read": true}, f)
}

func TestEditFieldsFullUpdate(t *testing.T) {
	name := "vehicles"
	u := CategoryUpdate{Name: &name}

	f := u.EditFields(false)

	// Every declared field is applied; the unset one becomes NULL.
	assert.Equal(t, repository.Fields{"name": "vehicles", "description": nil}, f)
}

func TestItemFilterOnlySetFields(t *testing.T) {
	catID := int64(2)
	active := false
	f := ItemFilter{CategoryID: &catID, IsActive: &active}.Filters()

	assert.Equal(t, repository.Filters{
		"category_id": int64(2),
		"is_active":   false,
	}, f)
}

func TestMessageCreateInjectsSender(t *testing.T) {
	m := MessageCreate{RecipientID: 2, ItemID: 7, Text: "still available?"}

	f := m.Fields(41)

	assert.Equal(t, repository.Fields{
		"sender_id":    int64(41),
		"recipient_id": int64(2),
		"item_id":      int64(7),
		"text":         "still available?",
	}, f)
}

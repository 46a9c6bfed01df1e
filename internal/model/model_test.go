package model

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func gormTag(t *testing.T, model interface{}, field string) string {
	t.Helper()
	f, ok := reflect.TypeOf(model).FieldByName(field)
	assert.True(t, ok, "field %s missing", field)
	return f.Tag.Get("gorm")
}

// Deleting an event must take its transactions with it; the constraint lives
// on the relation declaration the schema is migrated from.
func TestEventDeleteCascadesTransactions(t *testing.T) {
	tag := gormTag(t, Event{}, "Transactions")
	assert.True(t, strings.Contains(tag, "OnDelete:CASCADE"), "got tag %q", tag)
}

// Deleting an event must only unlink its expenses, not remove them, so the
// event reference is nullable and the constraint sets it to NULL.
func TestEventDeleteNullifiesExpenseLinks(t *testing.T) {
	tag := gormTag(t, Expense{}, "Event")
	assert.True(t, strings.Contains(tag, "OnDelete:SET NULL"), "got tag %q", tag)

	f, ok := reflect.TypeOf(Expense{}).FieldByName("EventID")
	assert.True(t, ok)
	assert.Equal(t, reflect.Ptr, f.Type.Kind(), "EventID must be nullable")
}

func TestPasswordHashNeverSerialized(t *testing.T) {
	f, ok := reflect.TypeOf(User{}).FieldByName("PasswordHash")
	assert.True(t, ok)
	assert.Equal(t, "-", f.Tag.Get("json"))
}

package migrate

import (
	"testing"

	"github.com/Domenick1991/airbooking/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestForeignKeysResolveToEntities(t *testing.T) {
	for _, fk := range ForeignKeys {
		assert.NotEqual(t, "record", repository.ReferencedEntity(fk.Name), fk.Name)
	}
}

func TestForeignKeysReferenceKnownTables(t *testing.T) {
	tables := make(map[string]bool)
	for _, m := range models() {
		tables[m.(interface{ TableName() string }).TableName()] = true
	}

	for _, fk := range ForeignKeys {
		assert.True(t, tables[fk.Table], fk.Table)
		assert.True(t, tables[fk.Reference], fk.Reference)
	}
}

func TestTicketUniquenessConstraintName(t *testing.T) {
	assert.Equal(t, "tickets_flight_row_seat_key", repository.TicketSeatConstraint)
	assert.Equal(t, "airplane_types_name_key", repository.AirplaneTypeNameConstraint)
}

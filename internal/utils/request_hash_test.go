package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brewpoints/cafe_ledger_app/internal/utils"
)

func TestRequestHash_Deterministic(t *testing.T) {
	a := utils.RequestHash("TOPUP", "user-1", "500", "note")
	b := utils.RequestHash("TOPUP", "user-1", "500", "note")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestRequestHash_SensitiveToEveryField(t *testing.T) {
	base := utils.RequestHash("TOPUP", "user-1", "500", "note")

	assert.NotEqual(t, base, utils.RequestHash("CHARGE", "user-1", "500", "note"))
	assert.NotEqual(t, base, utils.RequestHash("TOPUP", "user-2", "500", "note"))
	assert.NotEqual(t, base, utils.RequestHash("TOPUP", "user-1", "501", "note"))
	assert.NotEqual(t, base, utils.RequestHash("TOPUP", "user-1", "500", "other"))
}

func TestRequestHash_FieldBoundaries(t *testing.T) {
	// "ab"+"c" must not collide with "a"+"bc".
	assert.NotEqual(t,
		utils.RequestHash("OP", "ab", "c"),
		utils.RequestHash("OP", "a", "bc"))
}

func TestFormatMinorUnits(t *testing.T) {
	assert.Equal(t, "12.50", utils.FormatMinorUnits(1250))
	assert.Equal(t, "0.05", utils.FormatMinorUnits(5))
	assert.Equal(t, "0.00", utils.FormatMinorUnits(0))
	assert.Equal(t, "-3.00", utils.FormatMinorUnits(-300))
	assert.Equal(t, "92233720368547758.07", utils.FormatMinorUnits(9223372036854775807))
}

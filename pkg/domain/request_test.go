package domain_test

import (
	"math/big"
	"testing"

	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRequest_String(t *testing.T) {
	assert.Equal(t, "Tetrator(3, 3)", domain.NewRequest(3, 3).String())
}

func TestOutcome_Digits(t *testing.T) {
	o := domain.Outcome{Value: big.NewInt(7625597484987)}
	assert.True(t, o.OK())
	assert.Equal(t, "7625597484987", o.Decimal())
	assert.Equal(t, 13, o.Digits())

	var empty domain.Outcome
	assert.False(t, empty.OK())
	assert.Equal(t, 0, empty.Digits())
}

func TestRequest_Key(t *testing.T) {
	assert.Equal(t, "3:3", domain.NewRequest(3, 3).Key())
	assert.NotEqual(t, domain.NewRequest(3, 33).Key(), domain.NewRequest(33, 3).Key())
}

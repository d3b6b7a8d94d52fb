package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomization_CanonicalOrderIndependent(t *testing.T) {
	a := Customization{"cut": "curry", "size": "medium"}
	b := Customization{"size": "medium", "cut": "curry"}

	assert.Equal(t, a.Canonical(), b.Canonical())
}

func TestCustomization_CanonicalEmpty(t *testing.T) {
	assert.Equal(t, "{}", Customization(nil).Canonical())
	assert.Equal(t, "{}", Customization{}.Canonical())
}

func TestCartItem_KeySeparatesCustomizations(t *testing.T) {
	plain := CartItem{ID: "p1"}
	curry := CartItem{ID: "p1", Customization: Customization{"cut": "curry"}}
	fry := CartItem{ID: "p1", Customization: Customization{"cut": "fry"}}

	assert.NotEqual(t, plain.Key(), curry.Key())
	assert.NotEqual(t, curry.Key(), fry.Key())

	same := CartItem{ID: "p1", Customization: Customization{"cut": "curry"}}
	assert.Equal(t, curry.Key(), same.Key())
}

func TestCartItem_KeySeparatesProducts(t *testing.T) {
	a := CartItem{ID: "p1", Customization: Customization{"cut": "curry"}}
	b := CartItem{ID: "p2", Customization: Customization{"cut": "curry"}}

	assert.NotEqual(t, a.Key(), b.Key())
}

func TestCartItem_Valid(t *testing.T) {
	assert.True(t, CartItem{ID: "p1", Quantity: 1}.Valid())
	assert.False(t, CartItem{ID: "", Quantity: 1}.Valid())
	assert.False(t, CartItem{ID: "p1", Quantity: 0}.Valid())
	assert.False(t, CartItem{ID: "p1", Quantity: -2}.Valid())
}

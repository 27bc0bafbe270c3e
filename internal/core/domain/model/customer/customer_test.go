package customer_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Minute)
	t2 = t0.Add(2 * time.Minute)
)

func newCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewUUID(), "Ada Lovelace", "ada@example.com", "555-0100", t0)
	require.NoError(t, err)
	return c
}

func newAllergy(t *testing.T, name string, severity customer.Severity) customer.Allergy {
	t.Helper()
	a, err := customer.NewAllergy(name, severity, "")
	require.NoError(t, err)
	return a
}

func TestNewCustomer(t *testing.T) {
	t.Run("should create valid customer", func(t *testing.T) {
		c := newCustomer(t)

		require.NoError(t, c.Validate())
		assert.Equal(t, "Ada Lovelace", c.Name())
		assert.Equal(t, "ada@example.com", c.Email())
		assert.Equal(t, "555-0100", c.Phone())
		assert.Empty(t, c.Allergies())
		assert.Equal(t, t0, c.CreatedAt())
		assert.Equal(t, t0, c.UpdatedAt())
	})

	t.Run("should collect every broken rule", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "", "not-an-email", " ", t0)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Nil(t, c)
		report := errs.ReportOf(err)
		assert.Len(t, report.Errors, 3)
	})

	t.Run("should trim the email and keep its case", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), "Ada", "  Ada@Example.com ", "555", t0)

		require.NoError(t, err)
		assert.Equal(t, "Ada@Example.com", c.Email())
	})

	t.Run("should reject malformed emails", func(t *testing.T) {
		for _, email := range []string{"", "a@", "@b.com", "a b@c.com"} {
			_, err := customer.NewCustomer(kernel.NewUUID(), "Ada", email, "555", t0)

			require.Error(t, err, email)
			assert.Contains(t, err.Error(), "email", email)
		}
	})
}

func TestCustomer_Allergies(t *testing.T) {
	t.Run("add is unique by name", func(t *testing.T) {
		// Given
		c := newCustomer(t)

		// When
		require.NoError(t, c.AddAllergy(newAllergy(t, "peanuts", customer.Severe), t1))
		require.NoError(t, c.AddAllergy(newAllergy(t, "peanuts", customer.Mild), t2))

		// Then
		require.Len(t, c.Allergies(), 1)
		assert.Equal(t, customer.Severe, c.Allergies()[0].Severity())
		assert.Equal(t, t1, c.UpdatedAt())
		assert.True(t, c.HasAllergy("Peanuts"))
	})

	t.Run("add keeps the first entry when names differ only in case", func(t *testing.T) {
		// Given
		c := newCustomer(t)
		require.NoError(t, c.AddAllergy(newAllergy(t, "Peanuts", customer.Mild), t1))

		// When
		require.NoError(t, c.AddAllergy(newAllergy(t, "PEANUTS", customer.Severe), t2))

		// Then
		require.Len(t, c.Allergies(), 1)
		assert.Equal(t, "Peanuts", c.Allergies()[0].Name())
		assert.Equal(t, customer.Mild, c.Allergies()[0].Severity())
		assert.Equal(t, t1, c.UpdatedAt())
	})

	t.Run("remove drops by name and bumps updatedAt", func(t *testing.T) {
		c := newCustomer(t)
		require.NoError(t, c.AddAllergy(newAllergy(t, "dairy", ""), t1))

		c.RemoveAllergy("dairy", t2)

		assert.Empty(t, c.Allergies())
		assert.Equal(t, t2, c.UpdatedAt())
	})

	t.Run("removing an unknown allergy is not an error", func(t *testing.T) {
		c := newCustomer(t)

		c.RemoveAllergy("gluten", t1)

		assert.Empty(t, c.Allergies())
	})

	t.Run("rejects unconstructed allergy", func(t *testing.T) {
		c := newCustomer(t)

		err := c.AddAllergy(customer.Allergy{}, t1)

		require.ErrorIs(t, err, customer.ErrAllergyIsNotConstructed)
	})

	t.Run("returned list is a copy", func(t *testing.T) {
		c := newCustomer(t)
		require.NoError(t, c.AddAllergy(newAllergy(t, "dairy", ""), t1))

		list := c.Allergies()
		list[0] = newAllergy(t, "soy", "")

		assert.True(t, c.HasAllergy("dairy"))
		assert.False(t, c.HasAllergy("soy"))
	})
}

func TestCustomer_UpdateProfile(t *testing.T) {
	t.Run("empty fields are left untouched", func(t *testing.T) {
		c := newCustomer(t)

		require.NoError(t, c.UpdateProfile("", "", "555-0199", t1))

		assert.Equal(t, "Ada Lovelace", c.Name())
		assert.Equal(t, "ada@example.com", c.Email())
		assert.Equal(t, "555-0199", c.Phone())
		assert.Equal(t, t1, c.UpdatedAt())
	})

	t.Run("invalid input leaves the customer unchanged", func(t *testing.T) {
		c := newCustomer(t)

		err := c.UpdateProfile("Grace", "broken", "", t1)

		require.ErrorIs(t, err, errs.ErrValidation)
		assert.Equal(t, "Ada Lovelace", c.Name())
		assert.Equal(t, t0, c.UpdatedAt())
	})
}

func TestCustomer_WithAllergies(t *testing.T) {
	c := newCustomer(t)
	require.NoError(t, c.AddAllergy(newAllergy(t, "dairy", ""), t1))

	masked := c.WithAllergies([]customer.Allergy{c.Allergies()[0].Protect()})

	assert.True(t, masked.Allergies()[0].IsProtected())
	assert.False(t, c.Allergies()[0].IsProtected())
	assert.True(t, masked.IsEqual(c))
}

func TestAllergy(t *testing.T) {
	t.Run("defaults to moderate", func(t *testing.T) {
		a, err := customer.NewAllergy("gluten", "", "bread")

		require.NoError(t, err)
		assert.Equal(t, customer.Moderate, a.Severity())
		assert.Equal(t, "bread", a.Notes())
		assert.False(t, a.IsProtected())
	})

	t.Run("equality ignores notes", func(t *testing.T) {
		a, _ := customer.NewAllergy("gluten", customer.Mild, "x")
		b, _ := customer.NewAllergy("gluten", customer.Mild, "y")
		c, _ := customer.NewAllergy("gluten", customer.Severe, "x")

		assert.True(t, a.Equals(b))
		assert.False(t, a.Equals(c))
	})

	t.Run("collects name and severity problems", func(t *testing.T) {
		_, err := customer.NewAllergy(" ", "deadly", "")

		require.Error(t, err)
		assert.Len(t, errs.ReportOf(err).Errors, 2)
	})

	t.Run("parse severity", func(t *testing.T) {
		s, err := customer.ParseSeverity("SEVERE")
		require.NoError(t, err)
		assert.Equal(t, customer.Severe, s)

		s, err = customer.ParseSeverity("")
		require.NoError(t, err)
		assert.Equal(t, customer.Moderate, s)

		_, err = customer.ParseSeverity("extreme")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

package identifier

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
		value string
	}{
		{"plain email", "a@b.com", KindEmail, "a@b.com"},
		{"email inside sentence", "my email is visitor@example.org thanks", KindEmail, "visitor@example.org"},
		{"email wins over phone", "email a@b.com phone 9876543210", KindEmail, "a@b.com"},
		{"email with plus and dots", "john.doe+tickets@mail.co.in", KindEmail, "john.doe+tickets@mail.co.in"},
		{"booking code", "My id is ATH1023", KindBookingCode, "ATH1023"},
		{"booking code lower case", "ath77", KindBookingCode, "ATH77"},
		{"booking code wins over phone", "ATH1023 or 9876543210", KindBookingCode, "ATH1023"},
		{"phone with country code", "+91 9876543210", KindPhone, "+91 9876543210"},
		{"phone country code dash", "+91-9876543210", KindPhone, "+91-9876543210"},
		{"phone bare 91 prefix", "call 919876543210", KindPhone, "919876543210"},
		{"phone bare ten digits", "9876543210", KindPhone, "9876543210"},
		{"phone generic international", "+44 207946000", KindPhone, "+44 207946000"},
		{"ten digit run outranks generic international", "+44 2079460000", KindPhone, "2079460000"},
		{"nothing", "hello there", KindNone, ""},
		{"at sign without dot", "user@localhost", KindNone, ""},
		{"short digits", "12345", KindNone, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, value := Classify(tt.input)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestClassifyPhonePrecedence(t *testing.T) {
	// The country-coded form must match as a whole, not via its embedded
	// bare ten-digit run.
	kind, value := Classify("reach me at +91 9876543210 after noon")
	assert.Equal(t, KindPhone, kind)
	assert.Equal(t, "+91 9876543210", value)
}

func TestDeriveKey(t *testing.T) {
	assert.Equal(t, "a_b_at_c_com", DeriveKey("a.b@c.com"))
	assert.Equal(t, "visitor_at_example_org", DeriveKey("visitor@example.org"))

	// Deterministic.
	assert.Equal(t, DeriveKey("x@y.com"), DeriveKey("x@y.com"))
}

func TestDeriveKeyInjectiveOverExpectedCharset(t *testing.T) {
	// No two distinct addresses from the accepted charset (no underscores,
	// no literal "_at_") may collide.
	emails := []string{
		"a@b.com", "a.b@c.com", "ab@c.com", "a@bc.com",
		"visitor@example.org", "visitor@example.co.in",
		"john.doe@mail.com", "johndoe@mail.com", "john@doe.mail.com",
	}
	keys := make(map[string]string, len(emails))
	for _, email := range emails {
		key := DeriveKey(email)
		prev, collided := keys[key]
		assert.False(t, collided, fmt.Sprintf("%q and %q both derive %q", prev, email, key))
		keys[key] = email
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+919876543210", NormalizePhone("+91 98765-43210"))
	assert.Equal(t, "919876543210", NormalizePhone("91 (98765) 43210"))
	assert.Equal(t, "9876543210", NormalizePhone("98765 43210"))
	// "+" only counts in the leading position.
	assert.Equal(t, "12345", NormalizePhone("123+45"))
	assert.Equal(t, "", NormalizePhone("no digits"))
}

func TestLookupVariants(t *testing.T) {
	assert.Equal(t,
		[]string{"+919876543210", "9876543210", "919876543210"},
		LookupVariants("+91 9876543210"))

	assert.Equal(t,
		[]string{"919876543210", "9876543210", "+919876543210"},
		LookupVariants("919876543210"))

	assert.Equal(t,
		[]string{"9876543210", "919876543210", "+919876543210"},
		LookupVariants("9876543210"))

	// Short numbers stay as-is.
	assert.Equal(t, []string{"12345"}, LookupVariants("12345"))
}

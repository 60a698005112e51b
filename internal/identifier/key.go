package identifier

import "strings"

// DeriveKey turns an email address into its storage key: every "." becomes
// "_" and every "@" becomes "_at_". Deterministic and total. The transform
// is not injective for pathological inputs (an address already containing
// the literal "_at_", or an underscore where another address has a dot), but
// it is collision-free over the address charset actually accepted upstream.
func DeriveKey(email string) string {
	key := strings.ReplaceAll(email, ".", "_")
	return strings.ReplaceAll(key, "@", "_at_")
}

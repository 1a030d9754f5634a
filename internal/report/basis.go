package report

import (
	"regexp"
	"strings"

	"utreport/pkg/contracts/domain"
)

// tokenSeparators splits a basis-code list on CJK/ASCII commas,
// semicolons and whitespace runs.
var tokenSeparators = regexp.MustCompile(`[、，,;；\s]+`)

// BasisCodeDispatcher routes regulatory basis codes to their fixed
// template slots. Unrecognized or duplicate codes collect under the
// catch-all slot instead of being discarded.
type BasisCodeDispatcher struct {
	codes map[string]domain.BasisSlot
}

// NewBasisCodeDispatcher builds a dispatcher over the normalized-code
// table from configuration.
func NewBasisCodeDispatcher(codes map[string]domain.BasisSlot) *BasisCodeDispatcher {
	return &BasisCodeDispatcher{codes: codes}
}

// Dispatch tokenizes text and fills every slot. Slots with no matching
// token come back as "", so callers always clear stale template content.
// The slot receives the original (pre-normalization, trimmed) token text;
// first occurrence wins, later duplicates of the same normalized code go
// to the catch-all.
func (d *BasisCodeDispatcher) Dispatch(text string) map[domain.BasisSlot]string {
	slots := make(map[domain.BasisSlot]string, len(domain.BasisSlots))
	for _, slot := range domain.BasisSlots {
		slots[slot] = ""
	}
	if strings.TrimSpace(text) == "" {
		return slots
	}

	used := make(map[domain.BasisSlot]bool)
	var unknown []string
	for _, token := range tokenSeparators.Split(text, -1) {
		original := strings.TrimSpace(token)
		if original == "" {
			continue
		}
		slot, ok := d.codes[NormalizeCode(original)]
		if ok && !used[slot] {
			slots[slot] = original
			used[slot] = true
			continue
		}
		unknown = append(unknown, original)
	}
	if len(unknown) > 0 {
		slots[domain.SlotBasisOther] = strings.Join(unknown, ", ")
	}
	return slots
}

// NormalizeCode canonicalizes a basis-code token: uppercase, spaces
// stripped, em-dash and full-width dash unified to the ASCII hyphen, and
// the "GBT" spelling rewritten to "GB/T".
func NormalizeCode(s string) string {
	normalized := strings.ToUpper(s)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "—", "-")
	normalized = strings.ReplaceAll(normalized, "－", "-")
	return strings.ReplaceAll(normalized, "GBT", "GB/T")
}

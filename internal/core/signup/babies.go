package signup

import "strconv"

// maxBabies caps the baby step at twenty sub-forms.
const maxBabies = 20

// ResizeBabies applies a new baby-count input to an existing sub-form list.
//
// Rules, in order:
//   - text containing non-digit characters is ignored (list unchanged);
//   - empty or zero input resets to a single blank sub-form and clears the
//     count text;
//   - counts above maxBabies are ignored;
//   - growing appends freshly-initialized sub-forms at the tail, shrinking
//     pops trailing ones. Earlier siblings keep whatever was already typed.
//
// It returns the new list plus the count text to display.
func ResizeBabies(text string, babies []BabyDraft) ([]BabyDraft, string) {
	if text != "" && !numericText.MatchString(text) {
		return babies, strconv.Itoa(len(babies))
	}

	n, _ := strconv.Atoi(text)
	if n == 0 {
		if len(babies) == 0 {
			return []BabyDraft{{}}, ""
		}
		return babies[:1], ""
	}
	if n > maxBabies {
		return babies, strconv.Itoa(len(babies))
	}

	out := make([]BabyDraft, 0, n)
	out = append(out, babies...)
	for len(out) > n {
		out = out[:len(out)-1]
	}
	for len(out) < n {
		out = append(out, BabyDraft{})
	}
	return out, text
}

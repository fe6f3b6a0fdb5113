package shell

import "github.com/gosimple/slug"

// distributionID derives a descriptor id from a distribution name.
// The slug is lossy: names differing only in case or punctuation
// ("Ubuntu" and "ubuntu", "a.b" and "a-b") map to the same id.
func distributionID(name string) string {
	return IDPrefix + slug.Make(name)
}

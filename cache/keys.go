package cache

import "fmt"

// ListingPrefix matches every product listing key, regardless of search term
// or pagination. Warm-up tooling depends on this exact grammar.
const ListingPrefix = "products:"

// ListingKey derives the cache key for one page of the product listing.
//
//	products:all:page:<page>:limit:<limit>
//	products:search:<q>:page:<page>:limit:<limit>
//
// The search term is embedded verbatim. A term containing the literal
// delimiter sequences of the grammar (e.g. ":page:") could collide with a
// different (q, page, limit) tuple; known limitation, kept for
// interoperability with the existing key layout.
func ListingKey(q string, page, limit int) string {
	if q != "" {
		return fmt.Sprintf("%ssearch:%s:page:%d:limit:%d", ListingPrefix, q, page, limit)
	}
	return fmt.Sprintf("%sall:page:%d:limit:%d", ListingPrefix, page, limit)
}

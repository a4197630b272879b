// Package extract turns fetched markup into normalized page content
// and scored outbound link candidates. Selection is DOM-aware through
// goquery, with a regex tag-strip path kept for markup the parser
// cannot handle.
package extract

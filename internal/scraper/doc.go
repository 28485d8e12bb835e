// Package scraper extracts course meetings from a rendered schedule page.
//
// The scraper locates course containers through an ordered cascade of structural
// strategies (exact course-card class, class substrings, then a course-code text
// search that walks up to the enclosing card). Each field of a container has its own
// selector cascade with a regular-expression fallback on the container text. When no
// meeting is found structurally, the page's visible text is scanned line by line.
// Malformed markup never produces an error; it produces fewer meetings.
package scraper

// Package scraper reads the few facts the bot needs out of teveclub.hu pages.
//
// Built on:
//   - goquery: CSS selectors (options, inputs, icons)
//   - htmlquery: XPath lookup of the current trick
//   - bluemonday: strips markup from extracted fragments
//   - chardet and x/net/html/charset: decoding of non-UTF-8 pages
//
// Extraction never fails loudly: a page that does not match yields defaults
// (types.DefaultIcon, empty trick, no options), and callers treat absence
// as "unknown".
package scraper

// Package domain models the H1B prevailing-wage reference dataset.
//
// # Data Source
//
// The dataset is a versioned, read-only snapshot produced by an offline
// build step from Department of Labor OFLC wage survey exports. It
// consists of three plain-JSON artifacts:
//
//	occupations.json   — []Occupation, pre-sorted by popularity then
//	                     observation count then title at build time
//	areas.json         — []Area, sorted by name
//	wages/<soc>.json   — one WageTable per SOC code
//
// Nothing in this service mutates the dataset; it is immutable for the
// lifetime of a deployed release and safe to cache forever per process.
//
// # Dataset Conventions
//
// SOC codes:
//
//	Standard Occupational Classification codes in "NN-NNNN" format,
//	e.g. "15-1252" (Software Developers). The code is the natural key
//	for occupations and for wage table files.
//
// Areas:
//
//	Labor-market geographic units (metropolitan statistical areas or
//	balance-of-state regions) keyed by an opaque numeric string code.
//	The optional tier field ranks prominence: 1 = largest metros
//	(NYC/SF), 2 = major hubs (Austin/Denver), 3 = typical metros,
//	4 = small/rural, 5 = Puerto Rico and territory catch-all. Areas
//	with no tier assigned are treated as tier 3 wherever tier
//	filtering applies.
//
// Wage levels:
//
//	Each wage record carries hourly USD wages for the four standardized
//	prevailing-wage levels, L1 (entry) through L4 (most senior).
//	L1 <= L2 <= L3 <= L4 is expected but never enforced: a level with
//	insufficient survey data is recorded as 0, and the dataset does not
//	distinguish "no data at this level" from "data confirms zero".
//	Level-matching tests thresholds from L4 down to L1 so a zero-valued
//	lower level can never shadow a higher level that already matched.
//
// Annualization:
//
//	Annual figures are round(hourly x 2080), where 2080 is the standard
//	full-time hours per year (40 x 52). This is a fixed domain fact,
//	not configuration.
package domain

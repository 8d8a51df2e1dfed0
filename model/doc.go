// Package model provides the data types shared by every stage of the
// spatial text pipeline.
//
// Positioned input arrives as [Token] values collected in a [TokenStore].
// Tokens are grouped into [Line] values, and runs of lines form a [Block]
// carrying a closed [Classification]:
//
//	store := model.NewTokenStore()
//	store.Add("CITY", 160.8, 84.8, 26.4, 10.6)
//	store.Add("CASH", 189.8, 84.8, 29.3, 10.6)
//
// # Coordinates
//
// All coordinates use the source space of the extraction tool with the
// origin at the top-left corner and Y increasing downward. [BBox] follows
// the same convention.
//
// # Classification
//
// [Classification] is a closed enumeration (Empty, Paragraph, Table,
// Unknown). Unknown is an expected outcome, not an error; consumers should
// treat it like Paragraph when they need a rendering decision.
//
// # Tables
//
// [Table] holds cells recovered from a table-classified block and can be
// exported with ToMarkdown and ToCSV.
package model

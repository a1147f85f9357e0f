// Package report merges classifications back onto the reconciliation output
// and summarizes them per namespace.
//
// Aggregate produces one annotated Row per unmatched pair, in the Reconciler's
// order, and a frequency table ordered by count (most common first, ties by
// name). Percentages are rounded to two decimals; the TOTAL entry always reads
// 100.00 and counts every classified row.
//
// Render formats the frequency table for a terminal (go-pretty) or as plain
// tab-separated text for pipes and files.
package report

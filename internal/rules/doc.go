// Package rules holds the budgeting business rules as pure functions: entry
// status classification, budget- and category-level aggregation and salary
// deduction arithmetic. Nothing here touches the database; services load the
// rows and call in at every write or report boundary.
package rules

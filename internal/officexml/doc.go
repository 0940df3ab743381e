// Package officexml pulls plain text out of Office Open XML containers.
//
// Two independent paths share the same streaming technique: word-processing
// documents yield their paragraph text, spreadsheets yield pipe-delimited
// rows resolved through the shared-string table. Payloads come from the
// archive package; XML is consumed as a token stream so malformed markup
// degrades to whatever text was recovered before the error.
package officexml

package store

// ClassifyInsertError exposes classifyInsertError to black-box tests.
var ClassifyInsertError = classifyInsertError

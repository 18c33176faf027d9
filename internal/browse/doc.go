// Package browse presents kill ring entries for selection.
//
// Items turns ring entries into single-line labels and Filter ranks them
// against a fuzzy query. TUIPicker runs an interactive Bubble Tea list over
// the terminal; IndexPicker and QueryPicker choose without interaction for
// scripts and tests. All pickers satisfy killring.Picker.
package browse

// Package task defines the data model shared by the blueprint, the execution
// engine and the batch reader/writer.
//
// An Input is one row of a submitted batch. Running the blueprint for an Input
// yields exactly one Result. A FinalResult holds one Result per distinct task
// id after duplicate rows have been collapsed.
package task

// Package taskio reads batches from CSV and writes final results back as
// CSV.
//
// Input needs a header naming at least task_id and task_type; column order
// is free and extra columns are ignored. Output always carries the header
// task_id,final_status,error_info followed by one row per distinct task id.
package taskio

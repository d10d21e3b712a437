package taskio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kbukum/taskflow/task"
)

var outputHeader = []string{"task_id", "final_status", "error_info"}

// WriteCSV writes one row per distinct task id in the result's order.
// A nil result writes only the header.
func WriteCSV(w io.Writer, final *task.FinalResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(outputHeader); err != nil {
		return err
	}
	if final != nil {
		for _, r := range final.Results() {
			row := []string{
				strconv.FormatUint(r.TaskID, 10),
				string(r.FinalStatus()),
				r.ErrorInfo,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

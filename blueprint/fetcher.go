package blueprint

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/kbukum/taskflow/httpclient"
	"github.com/kbukum/taskflow/logger"
	"github.com/kbukum/taskflow/task"
)

// HTTPFetcher performs the lookup as a GET against a fixed URL.
type HTTPFetcher struct {
	client *httpclient.Client
	url    string
}

// NewHTTPFetcher returns a Fetcher that GETs url with client.
func NewHTTPFetcher(client *httpclient.Client, url string) *HTTPFetcher {
	return &HTTPFetcher{client: client, url: url}
}

// HeaderTaskID carries the task id on fetch requests.
const HeaderTaskID = "X-Task-Id"

// Fetch issues the request. The response body is read and dropped.
func (f *HTTPFetcher) Fetch(ctx context.Context, in task.Input) error {
	_, err := f.client.Do(ctx, httpclient.Request{
		Path:   f.url,
		Header: http.Header{HeaderTaskID: {strconv.FormatUint(in.TaskID, 10)}},
	})
	return err
}

// LogNotifier writes the completion notice to the diagnostic log.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier returns a Notifier writing to log.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify logs "Task <id> completed successfully".
func (n *LogNotifier) Notify(_ context.Context, in task.Input) error {
	n.log.WithTask(in.TaskID).Info(fmt.Sprintf("Task %d completed successfully", in.TaskID), map[string]interface{}{
		logger.FieldTaskType: in.TaskType,
	})
	return nil
}

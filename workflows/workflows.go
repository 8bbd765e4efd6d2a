package workflows

var WorkerWorkflows = []any{
	ExtractStills,
}

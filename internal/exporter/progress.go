package exporter

// ProgressEvent 导出进度事件
type ProgressEvent struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// ProgressFunc 进度回调，可为 nil
type ProgressFunc func(ProgressEvent)

// reportProgress 百分比限制在 [0, 100]
func reportProgress(progress ProgressFunc, percent int, stage string) {
	if progress == nil {
		return
	}
	progress(ProgressEvent{Percent: min(max(percent, 0), 100), Stage: stage})
}

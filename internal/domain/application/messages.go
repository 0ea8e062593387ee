package application

// Citizen-facing tracking messages per status.
var statusMessages = map[Status]string{
	StatusPending:       "Hồ sơ đang chờ tiếp nhận. Bộ phận giáo vụ sẽ xử lý trong vòng 01 buổi.",
	StatusProcessing:    "Hồ sơ đang được xử lý. Dự kiến hoàn thành trong 01 buổi làm việc.",
	StatusNeedsMoreInfo: "Hồ sơ cần bổ sung thông tin. Vui lòng kiểm tra bằng cách tra cứu hoặc liên hệ bộ phận giáo vụ để biết chi tiết.",
	StatusCompleted:     "Hồ sơ đã hoàn tất. Quý phụ huynh có thể đến trường nhận kết quả từ theo thời gian như sau.",
}

// StatusMessage returns the tracking message shown to the submitter. For
// needs_more_info the admin note replaces the generic message when present.
func StatusMessage(app *Application) string {
	if app.Status == StatusNeedsMoreInfo && app.AdminNote != "" {
		return app.AdminNote
	}
	return statusMessages[app.Status]
}

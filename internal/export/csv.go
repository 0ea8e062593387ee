// Package export renders the application collection as the CSV file the
// administration downloads. The format is what spreadsheet tools expect for
// Vietnamese text: UTF-8 with a BOM prefix, every cell double-quoted.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ptdn/hoso-portal/internal/domain/application"
)

// bom renders Vietnamese characters correctly when the file is opened in
// Excel.
const bom = "\uFEFF"

// timeLayout matches the vi-VN locale rendering used in the exported sheet.
const timeLayout = "02/01/2006 15:04:05"

var headers = []string{
	"STT", "Mã Hồ Sơ", "Họ Tên", "Số CCCD", "Số ĐT", "Loại Thủ Tục",
	"Trạng Thái", "Đã Nhận", "Thời Gian Nộp", "Thời Gian Hoàn Thành",
	"Ghi Chú Admin",
}

var serviceLabels = map[application.ServiceType]string{
	application.ServiceWithdrawDocuments:      "Thủ tục rút hồ sơ/học bạ",
	application.ServiceAcademicCertificate:    "Thủ tục cấp giấy xác nhận kết quả học tập THPT",
	application.ServiceAcademicProcess:        "Thủ tục cấp giấy xác nhận quá trình học tập",
	application.ServiceTransferOut:            "Thủ tục chuyển trường đi",
	application.ServiceEnrollmentConfirmation: "Thủ tục xác nhận đang học tại trường",
	application.ServiceGraduationCertificate:  "Thủ tục rút bằng tốt nghiệp THPT",
	application.ServiceProgramCompletion:      "Thủ tục xác nhận hoàn thành chương trình THPT",
	application.ServiceTempGraduationCert:     "Thủ tục cấp lại giấy chứng nhận tốt nghiệp (tạm thời)",
}

// fallbackServiceLabel covers service types not in the closed set.
const fallbackServiceLabel = "Thủ tục khác"

var statusLabels = map[application.Status]string{
	application.StatusPending:       "Chờ xử lý",
	application.StatusProcessing:    "Đang xử lý",
	application.StatusNeedsMoreInfo: "Cần bổ sung",
	application.StatusCompleted:     "Hoàn thành",
}

// ServiceLabel returns the human-readable procedure name.
func ServiceLabel(t application.ServiceType) string {
	if label, ok := serviceLabels[t]; ok {
		return label
	}
	return fallbackServiceLabel
}

// StatusLabel returns the human-readable status name.
func StatusLabel(s application.Status) string {
	return statusLabels[s]
}

// CSV renders the collection in insertion order. The output is a pure
// function of apps; delivery is the transport's concern.
func CSV(apps []application.Application) []byte {
	rows := make([]string, 0, len(apps)+1)
	rows = append(rows, renderRow(headers))

	for _, app := range apps {
		received := "Chưa nhận"
		if app.IsReceived {
			received = "Đã nhận"
		}
		completed := ""
		if app.CompletedAt != nil {
			completed = app.CompletedAt.Format(timeLayout)
		}
		rows = append(rows, renderRow([]string{
			strconv.Itoa(app.OrderNumber),
			app.Code,
			app.FullName,
			app.IDNumber,
			app.PhoneNumber,
			ServiceLabel(app.ServiceType),
			StatusLabel(app.Status),
			received,
			app.SubmittedAt.Format(timeLayout),
			completed,
			app.AdminNote,
		}))
	}

	return []byte(bom + strings.Join(rows, "\n"))
}

// Filename returns the download name for an export generated at now.
func Filename(now time.Time) string {
	return fmt.Sprintf("danh_sach_ho_so_%s.csv", now.Format("2006-01-02"))
}

// renderRow force-quotes every cell, doubling embedded quotes.
func renderRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, cell := range cells {
		quoted[i] = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}

package calculator

import (
	"encoding/json"
	"time"

	"calcHistory/internal/domain"
)

// TimestampLayout — формат времени записей и выгрузки (ISO-8601, UTC).
const TimestampLayout = time.RFC3339Nano

// CalculationRequest — тело POST /add, /subtract, /multiply, /divide.
// Указатели отличают отсутствующее поле от нуля.
type CalculationRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

// CalculationResponse — ответ операции (без времени записи).
type CalculationResponse struct {
	ID        string  `json:"id"`
	Result    float64 `json:"result"`
	Operation string  `json:"operation"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// CalculationExport — запись в истории и выгрузке.
type CalculationExport struct {
	ID        string  `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Result    float64 `json:"result"`
	Operation string  `json:"operation"`
	Timestamp string  `json:"timestamp"`
}

// HistoryResponse — ответ GET /history.
type HistoryResponse struct {
	TotalCount   int                 `json:"total_count"`
	Calculations []CalculationExport `json:"calculations"`
}

// ExportResponse — содержимое файла GET /export-file.
type ExportResponse struct {
	ExportTimestamp string              `json:"export_timestamp"`
	TotalCount      int                 `json:"total_count"`
	Calculations    []CalculationExport `json:"calculations"`
}

// ErrorResponse — тело клиентских и серверных ошибок.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func newCalculationResponse(c *domain.Calculation) CalculationResponse {
	return CalculationResponse{
		ID:        c.ID,
		Result:    c.Result,
		Operation: string(c.Operation),
		X:         c.X,
		Y:         c.Y,
	}
}

func newCalculationExports(list []domain.Calculation) []CalculationExport {
	items := make([]CalculationExport, len(list))
	for i, c := range list {
		items[i] = CalculationExport{
			ID:        c.ID,
			X:         c.X,
			Y:         c.Y,
			Result:    c.Result,
			Operation: string(c.Operation),
			Timestamp: c.Timestamp.UTC().Format(TimestampLayout),
		}
	}
	return items
}

// NewHistoryResponse собирает ответ истории.
func NewHistoryResponse(list []domain.Calculation) HistoryResponse {
	return HistoryResponse{TotalCount: len(list), Calculations: newCalculationExports(list)}
}

// NewExportResponse собирает содержимое файла выгрузки.
func NewExportResponse(exp *domain.Export) ExportResponse {
	return ExportResponse{
		ExportTimestamp: exp.GeneratedAt.UTC().Format(TimestampLayout),
		TotalCount:      len(exp.Calculations),
		Calculations:    newCalculationExports(exp.Calculations),
	}
}

// RenderExport сериализует выгрузку в JSON с отступом в два пробела (тело файла).
func RenderExport(exp *domain.Export) ([]byte, error) {
	return json.MarshalIndent(NewExportResponse(exp), "", "  ")
}

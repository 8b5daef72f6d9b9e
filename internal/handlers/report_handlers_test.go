package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webprint/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GenerateReport(inputFolder string, format string, fields []string, outputFile string) (int, error) {
	args := m.Called(inputFolder, format, fields, outputFile)
	return args.Int(0), args.Error(1)
}

func TestGenerateReport(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    string
		setupMock      func(*MockReportService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Valid Request - Success",
			requestBody: `{"input_folder":"scans","fields":["HTTPServer","IP"],"output_file":"report.csv"}`,
			setupMock: func(m *MockReportService) {
				m.On("GenerateReport", "scans", "json", []string{"HTTPServer", "IP"}, "report.csv").
					Return(7, nil)
			},
			expectedStatus: 200,
			expectedBody:   `{"records":7,"output_file":"report.csv"}`,
		},
		{
			name:           "Missing Required Field - input_folder",
			requestBody:    `{"fields":["HTTPServer"],"output_file":"report.csv"}`,
			setupMock:      func(m *MockReportService) {},
			expectedStatus: 400,
			expectedBody:   `{"error":"Invalid request payload"}`,
		},
		{
			name:        "Unsupported Format",
			requestBody: `{"input_folder":"scans","log_format":"xml","fields":["HTTPServer"],"output_file":"report.csv"}`,
			setupMock: func(m *MockReportService) {
				m.On("GenerateReport", "scans", "xml", []string{"HTTPServer"}, "report.csv").
					Return(0, fmt.Errorf("log format %q: %w", "xml", errors.ErrUnsupportedFormat))
			},
			expectedStatus: 400,
			expectedBody:   `{"error":"log format \"xml\": unsupported log format"}`,
		},
		{
			name:        "Parse Error",
			requestBody: `{"input_folder":"scans","fields":["HTTPServer"],"output_file":"report.csv"}`,
			setupMock: func(m *MockReportService) {
				m.On("GenerateReport", "scans", "json", []string{"HTTPServer"}, "report.csv").
					Return(0, errors.NewParseError("scans/broken.json", fmt.Errorf("invalid character 'E'")))
			},
			expectedStatus: 422,
			expectedBody:   `{"error":"failed to parse log file scans/broken.json: invalid character 'E'"}`,
		},
		{
			name:        "Output Error - Internal",
			requestBody: `{"input_folder":"scans","fields":["HTTPServer"],"output_file":"/nope/report.csv"}`,
			setupMock: func(m *MockReportService) {
				m.On("GenerateReport", "scans", "json", []string{"HTTPServer"}, "/nope/report.csv").
					Return(0, errors.NewOutputError("/nope/report.csv", fmt.Errorf("permission denied")))
			},
			expectedStatus: 500,
			expectedBody:   `{"error":"Failed to generate report"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockReportService)
			tt.setupMock(mockService)

			handler := NewReportHandler(mockService)

			router := gin.New()
			router.POST("/reports", handler.GenerateReport)

			req := httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

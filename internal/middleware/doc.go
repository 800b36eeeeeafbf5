// Package middleware 提供了 HTTP 請求處理的中間件。
//
// 包含 JWT 身份驗證、zap 請求日誌、請求 ID 與 Prometheus 指標。
package middleware

// Package api 組裝 gin 路由。
//
// handlers 子套件把 HTTP 請求轉成服務層呼叫，並統一把服務層錯誤
// 轉成 {"error", "code"} 格式的回應。
package api

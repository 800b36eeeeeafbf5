package service

import (
	"math"
	"strconv"
	"strings"
)

// ValidateOrder 驗證訊息的排序鍵
//
// 依序檢查：有值、可解析為有限數字、大於零、不與章節內其他訊息重複。
// 通過時原樣回傳數值，不會重新編號其他訊息。
// 更新訊息時，existing 必須已排除該訊息本身的排序鍵。
//
// 排序鍵是稀疏的浮點數，插入兩則訊息之間只要取中間值；
// 目前沒有重新平衡，同一位置反覆取中間值最終會耗盡浮點精度。
func ValidateOrder(candidate string, existing []float64) (float64, error) {
	raw := strings.TrimSpace(candidate)
	if raw == "" {
		return 0, ErrMissingOrder
	}

	if hexLiteral(raw) {
		return 0, ErrInvalidOrder
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, ErrInvalidOrder
	}

	if value <= 0 {
		return 0, ErrNonPositiveOrder
	}

	for _, used := range existing {
		if used == value {
			return 0, withDetail(ErrDuplicateOrder, FormatOrder(value))
		}
	}

	return value, nil
}

// hexLiteral ParseFloat 接受 Go 的十六進位浮點寫法（0x1p-2），排序鍵只收十進位
func hexLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// FormatOrder 把數值排序鍵轉回 ValidateOrder 接受的字串
func FormatOrder(order float64) string {
	return strconv.FormatFloat(order, 'g', -1, 64)
}

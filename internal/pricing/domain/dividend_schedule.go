package domain

import "sort"

// DividendEntry 单笔现金股息
type DividendEntry struct {
	ExDate float64 // 除息日（年）
	Amount float64 // 股息金额（美元）
}

// DividendSchedule 按除息日升序维护的现金股息表
// 同一除息日重复添加时覆盖原金额
type DividendSchedule struct {
	entries []DividendEntry
}

// NewDividendSchedule 创建空股息表
func NewDividendSchedule() *DividendSchedule {
	return &DividendSchedule{}
}

// AddDividend 添加一笔股息
// exDate 为除息时间（年），amount 为股息金额
func (s *DividendSchedule) AddDividend(exDate, amount float64) {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].ExDate >= exDate
	})
	if i < len(s.entries) && s.entries[i].ExDate == exDate {
		s.entries[i].Amount = amount
		return
	}
	s.entries = append(s.entries, DividendEntry{})
	copy(s.entries[i+1:], s.entries[i:])
	s.entries[i] = DividendEntry{ExDate: exDate, Amount: amount}
}

// PresentValue 计算到期日 maturity 之前全部股息的现值
// 按除息日升序求和，保证结果可复现
func (s *DividendSchedule) PresentValue(maturity float64, curve *DiscountCurve) float64 {
	totalPV := 0.0
	for _, e := range s.entries {
		if e.ExDate > maturity {
			break
		}
		totalPV += e.Amount * curve.DiscountFactor(e.ExDate)
	}
	return totalPV
}

// HasDividendsBefore 判断 maturity 之前是否存在股息
func (s *DividendSchedule) HasDividendsBefore(maturity float64) bool {
	return len(s.entries) > 0 && s.entries[0].ExDate <= maturity
}

// Dividends 返回升序排列的股息副本
func (s *DividendSchedule) Dividends() []DividendEntry {
	out := make([]DividendEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len 返回股息笔数
func (s *DividendSchedule) Len() int {
	return len(s.entries)
}

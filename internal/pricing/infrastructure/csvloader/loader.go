// Package csvloader 从 CSV 文件装载股息表
package csvloader

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/quantbase/equitypricing/internal/pricing/domain"
)

// dividendRecord CSV 中的一行股息记录
type dividendRecord struct {
	ExDate float64 `csv:"ex_date"`
	Amount float64 `csv:"amount"`
}

// LoadDividendSchedule 从 CSV 流装载股息表
// 期望表头 ex_date,amount；ex_date 为年化时间，amount 为每股现金股息
func LoadDividendSchedule(r io.Reader) (*domain.DividendSchedule, error) {
	var records []dividendRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("parse dividend csv: %w", err)
	}

	schedule := domain.NewDividendSchedule()
	for i, rec := range records {
		if rec.ExDate < 0 {
			return nil, fmt.Errorf("row %d: ex_date must be non-negative, got %v", i+1, rec.ExDate)
		}
		if rec.Amount <= 0 {
			return nil, fmt.Errorf("row %d: amount must be positive, got %v", i+1, rec.Amount)
		}
		schedule.AddDividend(rec.ExDate, rec.Amount)
	}
	return schedule, nil
}

// LoadDividendScheduleFile 从 CSV 文件装载股息表
func LoadDividendScheduleFile(path string) (*domain.DividendSchedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dividend csv: %w", err)
	}
	defer f.Close()

	return LoadDividendSchedule(f)
}

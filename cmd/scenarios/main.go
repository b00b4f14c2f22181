// 演示程序：跑一组有代表性的定价场景并打印结果
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quantbase/equitypricing/internal/pricing/domain"
	"github.com/quantbase/equitypricing/internal/pricing/infrastructure/csvloader"
)

func main() {
	var (
		spot         = flag.Float64("spot", 100, "spot price")
		strike       = flag.Float64("strike", 100, "strike price")
		maturity     = flag.Float64("maturity", 1.0, "time to expiry in years")
		rate         = flag.Float64("rate", 0.05, "risk-free rate")
		vol          = flag.Float64("vol", 0.20, "volatility")
		yield        = flag.Float64("yield", 0.02, "continuous dividend yield")
		steps        = flag.Int("steps", 500, "lattice steps for validation")
		dividendsCSV = flag.String("dividends", "", "optional CSV file with discrete dividends (ex_date,amount)")
	)
	flag.Parse()

	engine := domain.NewBlackScholesEngine(*spot, *strike, *maturity, *rate, *vol)
	curve := domain.NewDiscountCurve(*rate)

	schedule := domain.NewDividendSchedule()
	if *dividendsCSV != "" {
		loaded, err := csvloader.LoadDividendScheduleFile(*dividendsCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load dividends: %v\n", err)
			os.Exit(1)
		}
		schedule = loaded
	} else {
		schedule.AddDividend(*maturity*0.25, 1.0)
		schedule.AddDividend(*maturity*0.75, 1.0)
	}

	fmt.Printf("=== Call option: S=%.2f K=%.2f T=%.2f r=%.2f%% vol=%.2f%% ===\n\n",
		*spot, *strike, *maturity, *rate*100, *vol*100)

	// 场景一：连续股息率
	price, err := engine.PriceContinuousYield(*yield)
	exitOn(err)
	fmt.Printf("[continuous yield q=%.2f%%]  price = %.4f\n", *yield*100, price)

	greeks, err := engine.ComputeGreeks(*yield)
	exitOn(err)
	fmt.Printf("  delta=%.4f gamma=%.4f vega=%.4f theta=%.4f rho=%.4f\n\n",
		greeks.Delta, greeks.Gamma, greeks.Vega, greeks.Theta, greeks.Rho)

	// 场景二：离散现金股息
	noDiv, err := engine.PriceContinuousYield(0)
	exitOn(err)
	withDiv, err := engine.PriceDiscreteDividends(schedule, curve)
	exitOn(err)
	fmt.Printf("[discrete dividends x%d]  price = %.4f (no dividends: %.4f, PV adj: %.4f)\n\n",
		schedule.Len(), withDiv, noDiv, schedule.PresentValue(*maturity, curve))

	// 场景三：美式与欧式对比
	pricer := domain.NewAmericanPricer(engine, curve, schedule)
	cmp, err := pricer.PriceComparison()
	exitOn(err)
	fmt.Printf("[american]  european=%.4f american=%.4f premium=%.4f\n\n",
		cmp.EuropeanPrice, cmp.AmericanPrice, cmp.EarlyExercisePremium)

	// 场景四：二叉树交叉校验
	tree := domain.NewBinomialTree(*spot, *strike, *maturity, *rate, *vol, *steps)
	lattice, err := tree.PriceEuropeanCall()
	exitOn(err)
	result, err := domain.Validate(noDiv, lattice)
	exitOn(err)
	fmt.Printf("[validation %d steps]  closed-form=%.4f lattice=%.4f diff=%.4f%% passed=%v\n",
		*steps, result.ClosedFormPrice, result.LatticePrice, result.PercentDifference, result.Passed)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "pricing failed: %v\n", err)
		os.Exit(1)
	}
}

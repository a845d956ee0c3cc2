package metrics

import "github.com/prometheus/client_golang/prometheus"

// FinancialMetricsCollector implements FinancialMetricsRecorder, tracking
// credits balance, transaction volume, and trade profitability for the
// single agent this daemon controls.
type FinancialMetricsCollector struct {
	creditsBalance prometheus.Gauge

	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	tradeProfitPerUnit *prometheus.HistogramVec
	tradeMarginPercent *prometheus.HistogramVec
}

func NewFinancialMetricsCollector() *FinancialMetricsCollector {
	return &FinancialMetricsCollector{
		creditsBalance: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "agent_credits_balance",
				Help:      "Current credits balance of the controlled agent.",
			},
		),
		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total transactions by type (BUY/SELL) and category.",
			},
			[]string{"type", "category"},
		),
		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Transaction amount distribution.",
				Buckets:   []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"type", "category"},
		),
		tradeProfitPerUnit: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_profit_per_unit",
				Help:      "Profit per unit from mined-goods trades.",
				Buckets:   []float64{1, 5, 10, 50, 100, 500, 1000},
			},
			[]string{"good_symbol"},
		),
		tradeMarginPercent: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trade_margin_percent",
				Help:      "Trade margin percentage ((sell-buy)/buy * 100).",
				Buckets:   []float64{5, 10, 25, 50, 75, 100, 150, 200},
			},
			[]string{"good_symbol"},
		),
	}
}

func (c *FinancialMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	metrics := []prometheus.Collector{
		c.creditsBalance, c.transactionsTotal, c.transactionAmount,
		c.tradeProfitPerUnit, c.tradeMarginPercent,
	}
	for _, m := range metrics {
		if err := Registry.Register(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *FinancialMetricsCollector) RecordTransaction(transactionType, category string, amount, creditsBalance int) {
	c.creditsBalance.Set(float64(creditsBalance))
	c.transactionsTotal.WithLabelValues(transactionType, category).Inc()
	absAmount := amount
	if absAmount < 0 {
		absAmount = -absAmount
	}
	c.transactionAmount.WithLabelValues(transactionType, category).Observe(float64(absAmount))
}

func (c *FinancialMetricsCollector) RecordTrade(goodSymbol string, buyPrice, sellPrice, quantity int) {
	if buyPrice <= 0 || sellPrice <= 0 || quantity <= 0 {
		return
	}
	profitPerUnit := sellPrice - buyPrice
	c.tradeProfitPerUnit.WithLabelValues(goodSymbol).Observe(float64(profitPerUnit))
	marginPercent := float64(profitPerUnit) / float64(buyPrice) * 100
	c.tradeMarginPercent.WithLabelValues(goodSymbol).Observe(marginPercent)
}

package api

// Wire types of the trading platform's REST API. Monetary amounts arrive as
// decimal strings and are kept that way; the terminal never does arithmetic
// on them.

type TrendType string

const (
	TrendTopGainers TrendType = "TOP_GAINERS"
	TrendTopLosers  TrendType = "TOP_LOSERS"
)

type MarketIndex string

const (
	IndexNifty100      MarketIndex = "SYNIFTY100"
	IndexNiftySmallcap MarketIndex = "SYNIFSMCP100"
	IndexNiftyMidcap   MarketIndex = "SYNIFMDCP100"
	IndexNifty500      MarketIndex = "SYNIFTY500"
)

type Resolution string

const (
	ResolutionOneDay      Resolution = "ONE_DAY"
	ResolutionOneMonth    Resolution = "ONE_MONTH"
	ResolutionThreeMonths Resolution = "THREE_MONTHS"
	ResolutionSixMonths   Resolution = "SIX_MONTHS"
	ResolutionOneYear     Resolution = "ONE_YEAR"
	ResolutionFiveYears   Resolution = "FIVE_YEARS"
)

type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
)

type TransactionType string

const (
	TransactionBuy  TransactionType = "BUY"
	TransactionSell TransactionType = "SELL"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusExecuted  OrderStatus = "EXECUTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusFailed    OrderStatus = "FAILED"
)

type Company struct {
	ISIN             *string  `json:"isin"`
	Name             string   `json:"company_name"`
	SearchID         *string  `json:"search_id"`
	BSEScriptCode    *string  `json:"bse_script_code"`
	NSEScriptCode    *string  `json:"nse_script_code"`
	ShortName        *string  `json:"company_short_name"`
	LogoURL          *string  `json:"logo_url"`
	MarketCap        *float64 `json:"market_cap"`
	EquityType       *string  `json:"equity_type"`
	GrowwContractID  *string  `json:"groww_contract_id"`
}

type Stats struct {
	LTP           float64  `json:"ltp"`
	Close         *float64 `json:"close"`
	DayChange     *float64 `json:"day_change"`
	DayChangePerc *float64 `json:"day_change_perc"`
	High          *float64 `json:"high"`
	Low           *float64 `json:"low"`
	YearHigh      *float64 `json:"year_high_price"`
	YearLow       *float64 `json:"year_low_price"`
	LPR           *float64 `json:"lpr"`
	UPR           *float64 `json:"upr"`
}

type Trend struct {
	GSIN    *string `json:"gsin"`
	Company Company `json:"company"`
	Stats   Stats   `json:"stats"`
}

type MarketStatus struct {
	Status       string  `json:"status"`
	OpenTimeIST  *string `json:"open_time_ist,omitempty"`
	CloseTimeIST *string `json:"close_time_ist,omitempty"`
	CurrentIST   *string `json:"current_time_ist,omitempty"`
	Error        *string `json:"error,omitempty"`
}

type StockInfo struct {
	MCID               string  `json:"mcid"`
	Industry           *string `json:"industry,omitempty"`
	Sector             *string `json:"sector,omitempty"`
	FaceValue          *string `json:"face_value,omitempty"`
	CurrentPrice       *string `json:"current_price,omitempty"`
	BidPrice           *string `json:"bid_price,omitempty"`
	OfferPrice         *string `json:"offer_price,omitempty"`
	PrevClose          *string `json:"price_prev_close,omitempty"`
	PriceChange        *string `json:"price_change,omitempty"`
	PricePercentChange *string `json:"price_percent_change,omitempty"`
	DayHigh            *string `json:"day_high,omitempty"`
	DayLow             *string `json:"day_low,omitempty"`
	Volume             *int64  `json:"volume,omitempty"`
	LastPriceUpdateAt  *string `json:"last_price_update_at,omitempty"`
	Symbol             string  `json:"stock_symbol"`
	Exchange           string  `json:"stock_exchange"`
	UpdatedAt          *string `json:"updated_at,omitempty"`
}

type Stock struct {
	Symbol      string     `json:"symbol"`
	Exchange    string     `json:"exchange"`
	Name        string     `json:"name"`
	ISIN        *string    `json:"isinid,omitempty"`
	Description *string    `json:"description,omitempty"`
	Industry    *string    `json:"industry,omitempty"`
	Sentiment   *float64   `json:"sentiment,omitempty"`
	IDs         *string    `json:"ids,omitempty"`
	Sector      *string    `json:"sector,omitempty"`
	Management  *string    `json:"management,omitempty"`
	Addresses   *string    `json:"addresses,omitempty"`
	Info        *StockInfo `json:"stock_info,omitempty"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   *string    `json:"updated_at,omitempty"`
}

// HistoryPoint is one OHLCV candle. Field names follow the platform's
// charting format.
type HistoryPoint struct {
	T int64   `json:"t"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
	V float64 `json:"v"`
}

type Portfolio struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
}

type PortfolioCreate struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type PortfolioUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type PortfolioPerformance struct {
	PortfolioID          string   `json:"portfolio_id"`
	TotalCostBasis       string   `json:"total_cost_basis"`
	CurrentMarketValue   string   `json:"current_market_value"`
	TotalUnrealizedPL    string   `json:"total_unrealized_pl"`
	UnrealizedPLPercent  *string  `json:"total_unrealized_pl_percentage,omitempty"`
	CalculationTimestamp string   `json:"calculation_timestamp"`
	MissingPriceData     []string `json:"missing_price_data"`
}

type Holding struct {
	PortfolioID     string `json:"portfolio_id"`
	Symbol          string `json:"stock_symbol"`
	Exchange        string `json:"stock_exchange"`
	Quantity        int64  `json:"quantity"`
	AverageBuyPrice string `json:"average_buy_price"`
}

type OrderCreate struct {
	PortfolioID     string          `json:"portfolio_id"`
	Symbol          string          `json:"stock_symbol"`
	Exchange        string          `json:"stock_exchange"`
	OrderType       OrderType       `json:"order_type"`
	TransactionType TransactionType `json:"transaction_type"`
	Quantity        int64           `json:"quantity"`
	LimitPrice      *string         `json:"limit_price,omitempty"`
}

type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	PortfolioID     string          `json:"portfolio_id"`
	Symbol          string          `json:"stock_symbol"`
	Exchange        string          `json:"stock_exchange"`
	OrderType       OrderType       `json:"order_type"`
	TransactionType TransactionType `json:"transaction_type"`
	Quantity        int64           `json:"quantity"`
	LimitPrice      *string         `json:"limit_price,omitempty"`
	Status          OrderStatus     `json:"status"`
	ExecutedPrice   *string         `json:"executed_price,omitempty"`
	ExecutedAt      *string         `json:"executed_at,omitempty"`
	FailureReason   *string         `json:"failure_reason,omitempty"`
	FundsHeld       *string         `json:"funds_held,omitempty"`
	SharesHeld      *int64          `json:"shares_held,omitempty"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       *string         `json:"updated_at,omitempty"`
}

type Watchlist struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	IsDefault bool    `json:"is_default"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

type WatchlistCreate struct {
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

type WatchlistUpdate struct {
	Name *string `json:"name,omitempty"`
}

type WatchlistStock struct {
	Symbol   string  `json:"stock_symbol"`
	Exchange string  `json:"stock_exchange"`
	AddedAt  string  `json:"added_at"`
	Stock    *Stock  `json:"stock,omitempty"`
}

type News struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Content     *string `json:"content,omitempty"`
	Source      *string `json:"source,omitempty"`
	PublishedAt *string `json:"published_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   *string `json:"updated_at,omitempty"`
	Ago         *string `json:"ago,omitempty"`
}

type UserCreate struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

type UserUpdate struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

package entity

// CategoryStat aggregates transactions for one contribution category
type CategoryStat struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
	Total    string   `json:"total"`
}

// StatusStat aggregates transactions for one lifecycle state
type StatusStat struct {
	Status Status `json:"status"`
	Count  int64  `json:"count"`
	Total  string `json:"total"`
}

// TransactionStats is the admin-only aggregate view over all transactions
type TransactionStats struct {
	TotalCount  int64          `json:"totalCount"`
	TotalAmount string         `json:"totalAmount"`
	ByCategory  []CategoryStat `json:"byCategory"`
	ByStatus    []StatusStat   `json:"byStatus"`
}

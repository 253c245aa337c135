package leave

import (
	"math"
	"time"
)

// CountDays returns the inclusive day span between two dates.
func CountDays(start, end time.Time) int {
	diff := end.Sub(start).Hours() / 24
	return int(math.Ceil(diff)) + 1
}

type TypeBalance struct {
	Type      Type `json:"type"`
	Total     int  `json:"total"`
	Used      int  `json:"used"`
	Remaining int  `json:"remaining"`
}

type Balance struct {
	EmployeeID int64         `json:"employee_id"`
	Year       int           `json:"year"`
	Balances   []TypeBalance `json:"balances"`
}

// ComputeBalance subtracts the employee's approved days whose start falls in
// year from each annual allotment. Remaining may go negative.
func ComputeBalance(employeeID int64, year int, requests []LeaveRequest) Balance {
	used := make(map[Type]int, len(Types))
	for _, r := range requests {
		if r.EmployeeID != employeeID || r.Status != StatusApproved || r.StartDate.Year() != year {
			continue
		}
		used[r.Type] += r.Days
	}

	balance := Balance{EmployeeID: employeeID, Year: year, Balances: make([]TypeBalance, 0, len(Types))}
	for _, t := range Types {
		total := t.Allotment()
		balance.Balances = append(balance.Balances, TypeBalance{
			Type:      t,
			Total:     total,
			Used:      used[t],
			Remaining: total - used[t],
		})
	}
	return balance
}

// For returns the balance entry of one type.
func (b Balance) For(t Type) TypeBalance {
	for _, tb := range b.Balances {
		if tb.Type == t {
			return tb
		}
	}
	return TypeBalance{Type: t}
}

type Stats struct {
	TotalRequests int          `json:"total_requests"`
	Pending       int          `json:"pending"`
	Approved      int          `json:"approved"`
	Rejected      int          `json:"rejected"`
	TypeStats     map[Type]int `json:"type_stats"`
}

func ComputeStats(requests []LeaveRequest) Stats {
	stats := Stats{TypeStats: make(map[Type]int)}
	for _, r := range requests {
		stats.TotalRequests++
		switch r.Status {
		case StatusPending:
			stats.Pending++
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		}
		stats.TypeStats[r.Type]++
	}
	return stats
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// ReportRepo produces the derived views over rooms.  Reports hold no state
// of their own; every call re-reads the store.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo constructs a ReportRepo with the given DB handle.
func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// OccupancyRow is one room's line in the occupancy report.  Percent is
// formatted to one decimal place.
type OccupancyRow struct {
	RoomNumber string `json:"room_number"`
	Capacity   uint32 `json:"capacity"`
	Occupied   uint32 `json:"occupied"`
	Percent    string `json:"occupancy_percent"`
	Price      uint32 `json:"price"`
}

// Occupancy returns the per-room occupancy report ordered by room ID.
func (r *ReportRepo) Occupancy(ctx context.Context) ([]OccupancyRow, error) {
	const q = `SELECT room_number, capacity, current_occupancy, price FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OccupancyRow, 0)
	for rows.Next() {
		var row OccupancyRow
		if err := rows.Scan(&row.RoomNumber, &row.Capacity, &row.Occupied, &row.Price); err != nil {
			return nil, err
		}
		row.Percent = percent(row.Occupied, row.Capacity)
		out = append(out, row)
	}
	return out, rows.Err()
}

// RoomRevenue is one room's line in the financial summary.
type RoomRevenue struct {
	RoomNumber string `json:"room_number"`
	Capacity   uint32 `json:"capacity"`
	Occupied   uint32 `json:"occupied"`
	Price      uint32 `json:"price"`
	Revenue    uint64 `json:"revenue"`
}

// FinancialSummary aggregates revenue and occupancy over all rooms.
// With no rooms (or zero total capacity) every figure is a defined zero.
type FinancialSummary struct {
	TotalRooms    int           `json:"total_rooms"`
	TotalCapacity uint64        `json:"total_capacity"`
	TotalOccupied uint64        `json:"total_occupied"`
	OccupancyRate string        `json:"occupancy_rate"`
	TotalRevenue  uint64        `json:"total_revenue"`
	Rooms         []RoomRevenue `json:"rooms"`
}

// Financial computes the financial summary.  Revenue is price times
// current occupancy summed over all rooms.
func (r *ReportRepo) Financial(ctx context.Context) (*FinancialSummary, error) {
	sum := &FinancialSummary{Rooms: make([]RoomRevenue, 0)}
	const q = `SELECT room_number, capacity, current_occupancy, price FROM rooms ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rr RoomRevenue
		if err := rows.Scan(&rr.RoomNumber, &rr.Capacity, &rr.Occupied, &rr.Price); err != nil {
			return nil, err
		}
		rr.Revenue = uint64(rr.Price) * uint64(rr.Occupied)
		sum.TotalRooms++
		sum.TotalCapacity += uint64(rr.Capacity)
		sum.TotalOccupied += uint64(rr.Occupied)
		sum.TotalRevenue += rr.Revenue
		sum.Rooms = append(sum.Rooms, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sum.OccupancyRate = percent64(sum.TotalOccupied, sum.TotalCapacity)
	return sum, nil
}

// percent formats occupied/capacity as a percentage with one decimal
// place.  Zero capacity yields "0.0" rather than a division by zero.
func percent(occupied, capacity uint32) string {
	return percent64(uint64(occupied), uint64(capacity))
}

func percent64(occupied, capacity uint64) string {
	if capacity == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(occupied)/float64(capacity)*100)
}

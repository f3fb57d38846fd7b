package models

type Ticket struct {
	ID           int64 `json:"id"`
	EventID      int64 `json:"event_id"`
	HolderID     int64 `json:"holder_id"`
	SingleEntry  int8  `json:"single_entry"`
	Expended     int8  `json:"expended"`
	CreationDate int64 `json:"creation_date"`
}

func (t Ticket) IsSingleEntry() bool {
	return t.SingleEntry != 0
}

func (t Ticket) IsExpended() bool {
	return t.Expended != 0
}

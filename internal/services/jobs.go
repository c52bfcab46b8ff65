package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/siamlux/siamlux-api/internal/models"
)

// Inspector is the normalized inspector shape. Legacy rows stored a plain
// string; those become {Name: s, Phone: ""}.
type Inspector struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Job is a virtual work unit. It usually has no backing row: it is projected
// from an order line plus the order-level job defaults, with a persisted
// legacy record taking precedence when one exists for the same id.
type Job struct {
	ID        string `json:"id"`
	OrderID   uint   `json:"order_id,omitempty"`
	OrderCode string `json:"order_code,omitempty"`
	ItemIndex int    `json:"item_index"`

	ProductName  string `json:"product_name,omitempty"`
	Quantity     int    `json:"quantity,omitempty"`
	CustomerName string `json:"customer_name,omitempty"`

	JobType         string     `json:"job_type"`
	Status          string     `json:"status"`
	AppointmentDate *time.Time `json:"appointment_date"`
	CompletionDate  *time.Time `json:"completion_date"`
	Team            string     `json:"team"`
	Inspector       Inspector  `json:"inspector"`
	LocationName    string     `json:"install_location_name"`
	Address         string     `json:"install_address"`
	MapLink         string     `json:"google_map_link"`
	Distance        float64    `json:"distance"`
	Notes           string     `json:"notes"`

	Persisted bool `json:"persisted"`
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func fallbackTime(v, def *time.Time) *time.Time {
	if v != nil {
		return v
	}
	return def
}

func fallbackFloat(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}

// FabricateJobID builds the identifier for an order line with no explicit
// job id: "{orderCode}-{itemIndex+1}".
func FabricateJobID(orderCode string, itemIndex int) string {
	return fmt.Sprintf("%s-%d", orderCode, itemIndex+1)
}

// deriveJob projects one order line into a virtual job. Every field resolves
// independently: item-level SubJob value, else the order's JobInfo default,
// else empty. Whole-object fallback would drop order defaults the moment a
// SubJob block exists with a single field filled in.
func deriveJob(o *models.Order, idx int) Job {
	it := o.Items[idx]
	var sub models.SubJob
	if it.SubJob != nil {
		sub = *it.SubJob
	}
	def := o.JobInfo
	return Job{
		ID:              fallback(sub.JobID, FabricateJobID(o.Code, idx)),
		OrderID:         o.ID,
		OrderCode:       o.Code,
		ItemIndex:       idx,
		ProductName:     it.SnapshotName,
		Quantity:        it.Quantity,
		CustomerName:    o.CustomerName,
		JobType:         fallback(sub.JobType, def.JobType),
		Status:          fallback(sub.Status, string(o.Status)),
		AppointmentDate: fallbackTime(sub.AppointmentDate, def.AppointmentDate),
		CompletionDate:  fallbackTime(sub.CompletionDate, def.CompletionDate),
		Team:            fallback(sub.Team, def.Team),
		Inspector: Inspector{
			Name:  fallback(sub.InspectorName, def.InspectorName),
			Phone: fallback(sub.InspectorPhone, def.InspectorPhone),
		},
		LocationName: fallback(sub.LocationName, def.LocationName),
		Address:      fallback(sub.Address, def.Address),
		MapLink:      fallback(sub.MapLink, def.MapLink),
		Distance:     fallbackFloat(sub.Distance, def.Distance),
		Notes:        fallback(sub.Notes, def.Notes),
	}
}

// mergeLegacy builds the job for a persisted record. Fields resolve through
// the record's own chain: the SubJob matched by job id, else the SubJob
// matched by product reference, else the record's stored fields.
func mergeLegacy(rec models.JobRecord, orders []models.Order) Job {
	var byID, byRef *models.SubJob
	var host *models.Order
	hostIdx := 0
	for oi := range orders {
		o := &orders[oi]
		for ii := range o.Items {
			sub := o.Items[ii].SubJob
			if sub == nil {
				continue
			}
			if byID == nil && rec.JobID != "" && sub.JobID == rec.JobID {
				byID = sub
				host = o
				hostIdx = ii
			}
			if byRef == nil && rec.ProductRef != "" && sub.ProductRef == rec.ProductRef {
				byRef = sub
				if byID == nil {
					host = o
					hostIdx = ii
				}
			}
		}
	}
	var a, b models.SubJob
	if byID != nil {
		a = *byID
	}
	if byRef != nil {
		b = *byRef
	}
	pick := func(x, y, z string) string { return fallback(x, fallback(y, z)) }
	pickT := func(x, y, z *time.Time) *time.Time { return fallbackTime(x, fallbackTime(y, z)) }

	job := Job{
		ID:        rec.JobID,
		OrderCode: rec.OrderCode,
		ItemIndex: hostIdx,
		JobType:   pick(a.JobType, b.JobType, rec.JobType),
		Status:    pick(a.Status, b.Status, rec.Status),

		AppointmentDate: pickT(a.AppointmentDate, b.AppointmentDate, rec.AppointmentDate),
		CompletionDate:  pickT(a.CompletionDate, b.CompletionDate, rec.CompletionDate),
		Team:            pick(a.Team, b.Team, rec.Team),
		Inspector: Inspector{
			Name:  pick(a.InspectorName, b.InspectorName, rec.InspectorName),
			Phone: pick(a.InspectorPhone, b.InspectorPhone, rec.InspectorPhone),
		},
		LocationName: pick(a.LocationName, b.LocationName, rec.LocationName),
		Address:      pick(a.Address, b.Address, rec.Address),
		MapLink:      pick(a.MapLink, b.MapLink, rec.MapLink),
		Distance:     fallbackFloat(a.Distance, fallbackFloat(b.Distance, rec.Distance)),
		Notes:        pick(a.Notes, b.Notes, rec.Notes),
		Persisted:    true,
	}
	if host != nil {
		job.OrderID = host.ID
		if job.OrderCode == "" {
			job.OrderCode = host.Code
		}
		job.CustomerName = host.CustomerName
		job.ProductName = host.Items[hostIdx].SnapshotName
		job.Quantity = host.Items[hostIdx].Quantity
	}
	return job
}

// farFuture sorts jobs with no appointment date after every dated job.
var farFuture = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

func sortJobs(jobs []Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		ti, tj := farFuture, farFuture
		if jobs[i].AppointmentDate != nil {
			ti = *jobs[i].AppointmentDate
		}
		if jobs[j].AppointmentDate != nil {
			tj = *jobs[j].AppointmentDate
		}
		if ti.Equal(tj) {
			return jobs[i].ID < jobs[j].ID
		}
		return ti.Before(tj)
	})
}

// DeriveJobs projects every line of every non-cancelled order into a job,
// substitutes persisted records where ids collide, appends persisted records
// that match no order line, and sorts by appointment date (undated last).
// Pure: same inputs, same output, same order.
func DeriveJobs(orders []models.Order, legacy []models.JobRecord) []Job {
	byID := make(map[string]models.JobRecord, len(legacy))
	for _, rec := range legacy {
		byID[rec.JobID] = rec
	}
	seen := make(map[string]bool)
	var jobs []Job
	for oi := range orders {
		o := &orders[oi]
		if o.Status == models.OrderCancelled {
			continue
		}
		for ii := range o.Items {
			j := deriveJob(o, ii)
			if rec, ok := byID[j.ID]; ok {
				j = mergeLegacy(rec, orders)
			}
			seen[j.ID] = true
			jobs = append(jobs, j)
		}
	}
	for _, rec := range legacy {
		if !seen[rec.JobID] {
			jobs = append(jobs, mergeLegacy(rec, orders))
		}
	}
	sortJobs(jobs)
	return jobs
}

// JobService exposes the job projection over the store.
type JobService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewJobService(db *gorm.DB, log zerolog.Logger) *JobService {
	return &JobService{DB: db, Log: log}
}

func (s *JobService) load(ctx context.Context) ([]models.Order, []models.JobRecord) {
	db := s.DB.WithContext(ctx)
	var orders []models.Order
	if err := db.Preload("Items.SubJob").Order("id asc").Find(&orders).Error; err != nil {
		s.Log.Warn().Err(err).Str("bucket", "orders").Msg("job derivation fetch failed, degrading to empty")
		orders = nil
	}
	var legacy []models.JobRecord
	if err := db.Order("id asc").Find(&legacy).Error; err != nil {
		s.Log.Warn().Err(err).Str("bucket", "jobs").Msg("legacy job fetch failed, degrading to empty")
		legacy = nil
	}
	return orders, legacy
}

// ListJobs returns the full job projection. Best-effort like the stock
// listing: store failures degrade to whatever buckets did load.
func (s *JobService) ListJobs(ctx context.Context) []Job {
	orders, legacy := s.load(ctx)
	jobs := DeriveJobs(orders, legacy)
	if jobs == nil {
		return []Job{}
	}
	return jobs
}

// GetJobByID probes the persisted table first and only then scans the whole
// virtual projection — that fallback is O(all orders), same cost as a full
// listing. Both paths run the exact same derivation, so lookup and list
// agree for any id.
func (s *JobService) GetJobByID(ctx context.Context, id string) (*Job, error) {
	db := s.DB.WithContext(ctx)
	var rec models.JobRecord
	err := db.Where("job_id = ?", id).First(&rec).Error
	if err == nil {
		orders, _ := s.load(ctx)
		j := mergeLegacy(rec, orders)
		return &j, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: load job %q: %v", ErrUpstreamIO, id, err)
	}
	for _, j := range s.ListJobs(ctx) {
		if j.ID == id {
			job := j
			return &job, nil
		}
	}
	return nil, nil
}

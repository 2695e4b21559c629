package services

import (
	"sort"
	"time"

	"venue_ops_backend/internal/models"
	"venue_ops_backend/internal/repositories"
)

// In-memory repository fakes. The executor argument is ignored; the
// pass-through runner below stands in for the transaction boundary so
// service logic can be exercised without a database.

type fakeTxRunner struct {
	runs int
}

func (f *fakeTxRunner) RunInTx(fn func(ex repositories.SQLExecutor) error) error {
	f.runs++
	return fn(nil)
}

// --- events ---

type fakeEventRepo struct {
	events      map[int64]*models.Event
	operativeID *int64
	nextID      int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[int64]*models.Event{}}
}

func (f *fakeEventRepo) CreateEvent(_ repositories.SQLExecutor, event *models.Event) (*models.Event, error) {
	f.nextID++
	stored := *event
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.events[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeEventRepo) GetEventByID(_ repositories.SQLExecutor, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *event
	return &out, nil
}

func (f *fakeEventRepo) GetEvents(_ models.EventFilters) ([]models.Event, int, error) {
	out := []models.Event{}
	for _, e := range f.events {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeEventRepo) UpdateEvent(_ repositories.SQLExecutor, event *models.Event) (*models.Event, error) {
	if _, ok := f.events[event.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	stored := *event
	f.events[event.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeEventRepo) UpdateEventState(_ repositories.SQLExecutor, id int64, state string, operative bool) error {
	event, ok := f.events[id]
	if !ok {
		return repositories.ErrNotFound
	}
	event.PublicState = state
	event.IsStaffOperative = operative
	return nil
}

func (f *fakeEventRepo) ClearOperativeFlagExcept(_ repositories.SQLExecutor, id int64) (int64, error) {
	var cleared int64
	for _, e := range f.events {
		if e.ID != id && e.IsStaffOperative {
			e.IsStaffOperative = false
			cleared++
		}
	}
	return cleared, nil
}

func (f *fakeEventRepo) GetOperativeEventID(_ repositories.SQLExecutor) (*int64, error) {
	if f.operativeID == nil {
		return nil, nil
	}
	id := *f.operativeID
	return &id, nil
}

func (f *fakeEventRepo) SetOperativeEventID(_ repositories.SQLExecutor, id *int64) error {
	if id == nil {
		f.operativeID = nil
		return nil
	}
	v := *id
	f.operativeID = &v
	return nil
}

func (f *fakeEventRepo) ListDueAutoOpen(now time.Time) ([]models.Event, error) {
	out := []models.Event{}
	for _, e := range f.events {
		if e.PublicState == string(models.EventStateScheduled) && e.AutoOpenAt != nil && !e.AutoOpenAt.After(now) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEventRepo) ListDueAutoClose(now time.Time) ([]models.Event, error) {
	out := []models.Event{}
	for _, e := range f.events {
		if e.PublicState == string(models.EventStateLive) && e.AutoCloseAt != nil && !e.AutoCloseAt.After(now) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- reservations ---

type fakeReservationRepo struct {
	reservations map[int64]*models.Reservation
	events       *fakeEventRepo
	nextID       int64
}

func newFakeReservationRepo(events *fakeEventRepo) *fakeReservationRepo {
	return &fakeReservationRepo{reservations: map[int64]*models.Reservation{}, events: events}
}

func (f *fakeReservationRepo) CreateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	for _, r := range f.reservations {
		if r.CustomerID == reservation.CustomerID && r.EventID == reservation.EventID &&
			r.Status == string(models.ReservationStatusActive) &&
			reservation.Status == string(models.ReservationStatusActive) {
			return nil, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	stored := *reservation
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.reservations[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeReservationRepo) GetReservationByID(_ repositories.SQLExecutor, id int64) (*models.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *r
	return &out, nil
}

func (f *fakeReservationRepo) GetActiveReservation(_ repositories.SQLExecutor, customerID, eventID int64) (*models.Reservation, error) {
	for _, r := range f.reservations {
		if r.CustomerID == customerID && r.EventID == eventID && r.Status == string(models.ReservationStatusActive) {
			out := *r
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeReservationRepo) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if filters.CustomerID != nil && r.CustomerID != *filters.CustomerID {
			continue
		}
		if filters.EventID != nil && r.EventID != *filters.EventID {
			continue
		}
		if filters.Status != nil && r.Status != *filters.Status {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeReservationRepo) UpdateReservationStatus(_ repositories.SQLExecutor, id int64, status string) error {
	r, ok := f.reservations[id]
	if !ok {
		return repositories.ErrNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeReservationRepo) UpdateReservationStatusIfActive(_ repositories.SQLExecutor, id int64, status string) (bool, error) {
	r, ok := f.reservations[id]
	if !ok {
		return false, repositories.ErrNotFound
	}
	if r.Status != string(models.ReservationStatusActive) {
		return false, nil
	}
	r.Status = status
	return true, nil
}

func (f *fakeReservationRepo) UpdateTableApproval(_ repositories.SQLExecutor, id int64, approval string) error {
	r, ok := f.reservations[id]
	if !ok {
		return repositories.ErrNotFound
	}
	a := approval
	r.TableApproval = &a
	return nil
}

func (f *fakeReservationRepo) AssignTable(_ repositories.SQLExecutor, id int64, tableID int64, partySize int) error {
	r, ok := f.reservations[id]
	if !ok {
		return repositories.ErrNotFound
	}
	r.TableID = &tableID
	r.PartySize = &partySize
	return nil
}

func (f *fakeReservationRepo) ListChildren(_ repositories.SQLExecutor, parentID int64) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if r.ParentID != nil && *r.ParentID == parentID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReservationRepo) ListActiveForEvent(_ repositories.SQLExecutor, eventID int64) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if r.EventID == eventID && r.Status == string(models.ReservationStatusActive) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReservationRepo) ListStaleActive(eventID, customerID *int64, before time.Time) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range f.reservations {
		if r.Status != string(models.ReservationStatusActive) {
			continue
		}
		event, ok := f.events.events[r.EventID]
		if !ok || !event.EventDate.Before(before) {
			continue
		}
		if eventID != nil && r.EventID != *eventID {
			continue
		}
		if customerID != nil && r.CustomerID != *customerID {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeReservationRepo) DeleteReservation(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.reservations[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.reservations, id)
	return nil
}

// --- check-ins ---

type fakeCheckinRepo struct {
	checkins map[int64]*models.Checkin
	nextID   int64
}

func newFakeCheckinRepo() *fakeCheckinRepo {
	return &fakeCheckinRepo{checkins: map[int64]*models.Checkin{}}
}

func (f *fakeCheckinRepo) CreateCheckin(_ repositories.SQLExecutor, checkin *models.Checkin) (*models.Checkin, error) {
	for _, c := range f.checkins {
		if c.CustomerID == checkin.CustomerID && c.EventID == checkin.EventID {
			return nil, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	stored := *checkin
	stored.ID = f.nextID
	stored.EnteredAt = time.Now()
	f.checkins[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeCheckinRepo) GetCheckinByID(_ repositories.SQLExecutor, id int64) (*models.Checkin, error) {
	c, ok := f.checkins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCheckinRepo) GetCheckinForCustomerEvent(_ repositories.SQLExecutor, customerID, eventID int64) (*models.Checkin, error) {
	for _, c := range f.checkins {
		if c.CustomerID == customerID && c.EventID == eventID {
			out := *c
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCheckinRepo) CountForEvent(_ repositories.SQLExecutor, eventID int64) (int, error) {
	count := 0
	for _, c := range f.checkins {
		if c.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCheckinRepo) GetCheckins(filters models.CheckinFilters) ([]models.Checkin, int, error) {
	out := []models.Checkin{}
	for _, c := range f.checkins {
		if filters.EventID != nil && c.EventID != *filters.EventID {
			continue
		}
		if filters.CustomerID != nil && c.CustomerID != *filters.CustomerID {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeCheckinRepo) DeleteCheckin(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.checkins[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.checkins, id)
	return nil
}

// --- loyalty ---

type fakeLoyaltyRepo struct {
	entries    []*models.LoyaltyEntry
	thresholds []models.LevelThreshold
	nextID     int64
}

func newFakeLoyaltyRepo() *fakeLoyaltyRepo {
	return &fakeLoyaltyRepo{}
}

func (f *fakeLoyaltyRepo) AppendEntry(_ repositories.SQLExecutor, entry *models.LoyaltyEntry) (*models.LoyaltyEntry, error) {
	f.nextID++
	stored := *entry
	stored.ID = f.nextID
	stored.AwardedAt = time.Now()
	f.entries = append(f.entries, &stored)
	out := stored
	return &out, nil
}

func (f *fakeLoyaltyRepo) GetEntryByID(_ repositories.SQLExecutor, id int64) (*models.LoyaltyEntry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			out := *e
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeLoyaltyRepo) SumPointsForCustomer(_ repositories.SQLExecutor, customerID int64) (int, error) {
	sum := 0
	for _, e := range f.entries {
		if e.CustomerID == customerID {
			sum += e.Points
		}
	}
	return sum, nil
}

func (f *fakeLoyaltyRepo) ListEntriesForCustomer(customerID int64) ([]models.LoyaltyEntry, error) {
	out := []models.LoyaltyEntry{}
	for _, e := range f.entries {
		if e.CustomerID == customerID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeLoyaltyRepo) HasEntryWithReason(_ repositories.SQLExecutor, customerID, eventID int64, reason string) (bool, error) {
	for _, e := range f.entries {
		if e.CustomerID == customerID && e.EventID == eventID && e.Reason == reason {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLoyaltyRepo) GetThresholds(_ repositories.SQLExecutor) ([]models.LevelThreshold, error) {
	out := make([]models.LevelThreshold, len(f.thresholds))
	copy(out, f.thresholds)
	return out, nil
}

func (f *fakeLoyaltyRepo) UpsertThreshold(_ repositories.SQLExecutor, threshold models.LevelThreshold) error {
	for i, t := range f.thresholds {
		if t.Level == threshold.Level {
			f.thresholds[i] = threshold
			return nil
		}
	}
	f.thresholds = append(f.thresholds, threshold)
	sort.Slice(f.thresholds, func(i, j int) bool { return f.thresholds[i].MinPoints < f.thresholds[j].MinPoints })
	return nil
}

// --- customers ---

type fakeCustomerRepo struct {
	customers map[int64]*models.Customer
	nextID    int64
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[int64]*models.Customer{}}
}

func (f *fakeCustomerRepo) CreateCustomer(_ repositories.SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.ScanCode == customer.ScanCode {
			return nil, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	stored := *customer
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.customers[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeCustomerRepo) GetCustomerByID(_ repositories.SQLExecutor, id int64) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (f *fakeCustomerRepo) GetCustomerByScanCode(_ repositories.SQLExecutor, scanCode string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.ScanCode == scanCode {
			out := *c
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCustomerRepo) GetCustomers(_, _ int, _ *string) ([]models.Customer, int, error) {
	out := []models.Customer{}
	for _, c := range f.customers {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (f *fakeCustomerRepo) UpdateLoyaltyCache(_ repositories.SQLExecutor, id int64, points int, level string) error {
	c, ok := f.customers[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.LoyaltyPoints = points
	c.Level = level
	return nil
}

func (f *fakeCustomerRepo) TouchLastSeen(_ repositories.SQLExecutor, id int64) error {
	c, ok := f.customers[id]
	if !ok {
		return repositories.ErrNotFound
	}
	now := time.Now()
	c.LastSeenAt = &now
	return nil
}

// --- audit ---

type fakeAuditRepo struct {
	entries []*models.AuditEntry
	nextID  int64
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (f *fakeAuditRepo) InsertEntry(_ repositories.SQLExecutor, entry *models.AuditEntry) error {
	f.nextID++
	stored := *entry
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.entries = append(f.entries, &stored)
	return nil
}

func (f *fakeAuditRepo) GetEntries(filters models.AuditFilters) ([]models.AuditEntry, int, error) {
	out := []models.AuditEntry{}
	for _, e := range f.entries {
		if filters.Action != nil && e.Action != *filters.Action {
			continue
		}
		if filters.TableName != nil && e.TableName != *filters.TableName {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

// actionsRecorded returns the audit actions in insertion order, for
// asserting on the trail a flow leaves behind.
func (f *fakeAuditRepo) actionsRecorded() []string {
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

// --- tables ---

type fakeTableRepo struct {
	tables map[int64]*models.EventTable
	nextID int64
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: map[int64]*models.EventTable{}}
}

func (f *fakeTableRepo) CreateTable(_ repositories.SQLExecutor, table *models.EventTable) (*models.EventTable, error) {
	for _, t := range f.tables {
		if t.EventID == table.EventID && t.TableNumber == table.TableNumber {
			return nil, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	stored := *table
	stored.ID = f.nextID
	f.tables[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeTableRepo) GetTableByID(_ repositories.SQLExecutor, id int64) (*models.EventTable, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	out := *t
	return &out, nil
}

func (f *fakeTableRepo) ListTablesForEvent(eventID int64) ([]models.EventTable, error) {
	out := []models.EventTable{}
	for _, t := range f.tables {
		if t.EventID == eventID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTableRepo) UpdateTable(_ repositories.SQLExecutor, table *models.EventTable) (*models.EventTable, error) {
	if _, ok := f.tables[table.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	stored := *table
	f.tables[table.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeTableRepo) DeleteTable(_ repositories.SQLExecutor, id int64) error {
	if _, ok := f.tables[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.tables, id)
	return nil
}

// --- purchases / feedback ---

type fakePurchaseRepo struct {
	purchases []*models.Purchase
	nextID    int64
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{}
}

func (f *fakePurchaseRepo) CreatePurchase(_ repositories.SQLExecutor, purchase *models.Purchase) (*models.Purchase, error) {
	f.nextID++
	stored := *purchase
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.purchases = append(f.purchases, &stored)
	out := stored
	return &out, nil
}

func (f *fakePurchaseRepo) ListForCustomerEvent(customerID, eventID int64) ([]models.Purchase, error) {
	out := []models.Purchase{}
	for _, p := range f.purchases {
		if p.CustomerID == customerID && p.EventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeFeedbackRepo struct {
	feedback []*models.Feedback
	nextID   int64
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{}
}

func (f *fakeFeedbackRepo) CreateFeedback(_ repositories.SQLExecutor, feedback *models.Feedback) (*models.Feedback, error) {
	for _, existing := range f.feedback {
		if existing.CustomerID == feedback.CustomerID && existing.EventID == feedback.EventID {
			return nil, repositories.ErrDuplicateKey
		}
	}
	f.nextID++
	stored := *feedback
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	f.feedback = append(f.feedback, &stored)
	out := stored
	return &out, nil
}

func (f *fakeFeedbackRepo) GetForCustomerEvent(_ repositories.SQLExecutor, customerID, eventID int64) (*models.Feedback, error) {
	for _, fb := range f.feedback {
		if fb.CustomerID == customerID && fb.EventID == eventID {
			out := *fb
			return &out, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// --- fixture ---

// fixture wires every fake into the full service graph the way the router
// does in production.
type fixture struct {
	eventRepo       *fakeEventRepo
	customerRepo    *fakeCustomerRepo
	reservationRepo *fakeReservationRepo
	checkinRepo     *fakeCheckinRepo
	loyaltyRepo     *fakeLoyaltyRepo
	tableRepo       *fakeTableRepo
	auditRepo       *fakeAuditRepo
	purchaseRepo    *fakePurchaseRepo
	feedbackRepo    *fakeFeedbackRepo
	txRunner        *fakeTxRunner

	loyalty      LoyaltyService
	noShow       NoShowService
	events       EventService
	reservations ReservationService
	checkins     CheckinService
	purchases    PurchaseService
	feedback     FeedbackService
	customers    CustomerService
	tables       TableService
}

func newFixture() *fixture {
	f := &fixture{
		eventRepo:    newFakeEventRepo(),
		customerRepo: newFakeCustomerRepo(),
		checkinRepo:  newFakeCheckinRepo(),
		loyaltyRepo:  newFakeLoyaltyRepo(),
		tableRepo:    newFakeTableRepo(),
		auditRepo:    newFakeAuditRepo(),
		purchaseRepo: newFakePurchaseRepo(),
		feedbackRepo: newFakeFeedbackRepo(),
		txRunner:     &fakeTxRunner{},
	}
	f.reservationRepo = newFakeReservationRepo(f.eventRepo)

	f.loyalty = NewLoyaltyService(f.loyaltyRepo, f.customerRepo, f.auditRepo, f.txRunner)
	f.noShow = NewNoShowService(f.reservationRepo, f.checkinRepo, f.auditRepo, f.loyalty, f.txRunner, nil)
	f.events = NewEventService(f.eventRepo, f.auditRepo, f.noShow, f.txRunner, nil, nil)
	f.reservations = NewReservationService(f.reservationRepo, f.eventRepo, f.customerRepo, f.tableRepo, f.auditRepo, f.txRunner, 18)
	f.checkins = NewCheckinService(f.checkinRepo, f.reservationRepo, f.eventRepo, f.customerRepo, f.auditRepo, f.loyalty, f.txRunner, nil)
	f.purchases = NewPurchaseService(f.purchaseRepo, f.checkinRepo, f.loyalty, f.txRunner)
	f.feedback = NewFeedbackService(f.feedbackRepo, f.checkinRepo, f.loyalty, f.txRunner)
	f.customers = NewCustomerService(f.customerRepo)
	f.tables = NewTableService(f.tableRepo, f.eventRepo)

	return f
}

// seedCustomer inserts a customer with the given scan code.
func (f *fixture) seedCustomer(scanCode string) *models.Customer {
	created, _ := f.customerRepo.CreateCustomer(nil, &models.Customer{
		FirstName:    "Guest",
		LastName:     "Person",
		ScanCode:     scanCode,
		Level:        models.LevelBase,
		AccountState: "active",
	})
	return created
}

// seedEvent inserts an event in the given state, dated tomorrow.
func (f *fixture) seedEvent(state string, capacity int) *models.Event {
	created, _ := f.eventRepo.CreateEvent(nil, &models.Event{
		Name:        "Friday Night",
		EventDate:   time.Now().Add(24 * time.Hour),
		MaxCapacity: capacity,
		PublicState: state,
	})
	if state == string(models.EventStateLive) {
		_ = f.eventRepo.UpdateEventState(nil, created.ID, state, true)
		_ = f.eventRepo.SetOperativeEventID(nil, &created.ID)
		created.IsStaffOperative = true
	}
	return created
}

// seedPastEvent inserts a closed-date event whose date is already behind us.
func (f *fixture) seedPastEvent(state string) *models.Event {
	created, _ := f.eventRepo.CreateEvent(nil, &models.Event{
		Name:        "Last Week",
		EventDate:   time.Now().Add(-72 * time.Hour),
		MaxCapacity: 100,
		PublicState: state,
	})
	return created
}

// seedActiveReservation inserts an active list reservation.
func (f *fixture) seedActiveReservation(customerID, eventID int64, category string) *models.Reservation {
	res := &models.Reservation{
		CustomerID: customerID,
		EventID:    eventID,
		Category:   category,
		Status:     string(models.ReservationStatusActive),
		Role:       models.ReservationRoleNone,
	}
	if category == string(models.ReservationCategoryTable) {
		res.Role = models.ReservationRoleOrganizer
		pending := models.TableApprovalPending
		res.TableApproval = &pending
	}
	created, _ := f.reservationRepo.CreateReservation(nil, res)
	return created
}

package memory

import (
	"context"
	"sort"
	"sync"

	domainbooking "staybook/internal/domain/booking"
	domainnotification "staybook/internal/domain/notification"
	domainprofile "staybook/internal/domain/profile"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/daterange"
)

type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.PropertyID]*domainproperty.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: map[domainproperty.PropertyID]*domainproperty.Property{}}
}

func (r *PropertyRepository) ByID(_ context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainproperty.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *PropertyRepository) Save(_ context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *PropertyRepository) ListAvailable(_ context.Context) ([]*domainproperty.Property, error) {
	return r.filter(func(p *domainproperty.Property) bool { return p.Available }), nil
}

func (r *PropertyRepository) ListByHost(_ context.Context, hostID string) ([]*domainproperty.Property, error) {
	return r.filter(func(p *domainproperty.Property) bool { return p.HostID == hostID }), nil
}

func (r *PropertyRepository) filter(keep func(*domainproperty.Property) bool) []*domainproperty.Property {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainproperty.Property
	for _, p := range r.items {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: map[domainbooking.BookingID]*domainbooking.Booking{}}
}

func (r *BookingRepository) ByID(_ context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrNotFound
	}
	return cloneBooking(b), nil
}

func (r *BookingRepository) Save(_ context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) ListByClient(_ context.Context, clientID string) ([]*domainbooking.Booking, error) {
	return r.filter(func(b *domainbooking.Booking) bool { return b.ClientID == clientID }), nil
}

func (r *BookingRepository) ListByProperty(_ context.Context, propertyID domainproperty.PropertyID) ([]*domainbooking.Booking, error) {
	return r.filter(func(b *domainbooking.Booking) bool { return b.PropertyID == propertyID }), nil
}

func (r *BookingRepository) AcceptedOverlapping(_ context.Context, propertyID domainproperty.PropertyID, dr daterange.DateRange) ([]*domainbooking.Booking, error) {
	return r.filter(func(b *domainbooking.Booking) bool {
		return b.PropertyID == propertyID && b.Status == domainbooking.StatusAccepted && b.Range.Overlaps(dr)
	}), nil
}

func (r *BookingRepository) filter(keep func(*domainbooking.Booking) bool) []*domainbooking.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainbooking.Booking
	for _, b := range r.items {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	cp := *b
	cp.ClearEvents()
	return &cp
}

type ProfileRepository struct {
	mu    sync.RWMutex
	items map[string]*domainprofile.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{items: map[string]*domainprofile.Profile{}}
}

func (r *ProfileRepository) ByID(_ context.Context, id string) (*domainprofile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainprofile.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProfileRepository) Insert(_ context.Context, p *domainprofile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[p.ID]; exists {
		return domainprofile.ErrAlreadyExists
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *ProfileRepository) Save(_ context.Context, p *domainprofile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

type NotificationRepository struct {
	mu    sync.RWMutex
	items map[string]*domainnotification.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{items: map[string]*domainnotification.Notification{}}
}

func (r *NotificationRepository) Insert(_ context.Context, n *domainnotification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID string) ([]*domainnotification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domainnotification.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok {
		return domainnotification.ErrNotFound
	}
	n.Read = true
	return nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.UserID == userID && !n.Read {
			n.Read = true
			count++
		}
	}
	return count, nil
}

package memory

import (
	"context"
	"sort"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/ArowuTest/conomy-backend/internal/repositories"
)

// Users ------------------------------------------------------------------------

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *models.User) error {
	return r.s.do(ctx, func(t *txn) error {
		t.read(usersIndexKey)
		if user.ID == "" {
			user.ID = newID()
		}
		for _, existing := range r.s.users {
			if existing.Email == user.Email {
				return repositories.ErrDuplicateEmail
			}
			if user.ReferralCode != "" && existing.ReferralCode == user.ReferralCode {
				return repositories.ErrDuplicateReferralCode
			}
		}
		user.JoinDate = r.s.now()
		stored := *user
		t.write(func() {
			r.s.users[stored.ID] = stored
			r.s.bump(usersIndexKey, userKey(stored.ID))
		})
		return nil
	})
}

func (r userRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	var found *models.User
	err := r.s.do(ctx, func(t *txn) error {
		t.read(userKey(id))
		u, ok := r.s.users[id]
		if !ok {
			return repositories.ErrNotFound
		}
		found = &u
		return nil
	})
	return found, err
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var found *models.User
	err := r.s.do(ctx, func(t *txn) error {
		t.read(usersIndexKey)
		for _, u := range r.s.users {
			if u.Email == email {
				u := u
				t.read(userKey(u.ID))
				found = &u
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r userRepo) FindByReferralCode(ctx context.Context, code string) ([]*models.User, error) {
	users := []*models.User{}
	err := r.s.do(ctx, func(t *txn) error {
		t.read(usersIndexKey)
		for _, u := range r.s.users {
			if u.ReferralCode == code {
				u := u
				t.read(userKey(u.ID))
				users = append(users, &u)
			}
		}
		return nil
	})
	return users, err
}

func (r userRepo) AdjustBalance(ctx context.Context, id string, delta int64) error {
	return r.s.do(ctx, func(t *txn) error {
		t.read(userKey(id))
		if _, ok := r.s.users[id]; !ok {
			return repositories.ErrNotFound
		}
		t.write(func() {
			u := r.s.users[id]
			u.Balance += delta
			r.s.users[id] = u
			r.s.bump(userKey(id))
		})
		return nil
	})
}

func (r userRepo) IncrementReferralCount(ctx context.Context, id string) error {
	return r.s.do(ctx, func(t *txn) error {
		t.read(userKey(id))
		if _, ok := r.s.users[id]; !ok {
			return repositories.ErrNotFound
		}
		t.write(func() {
			u := r.s.users[id]
			u.ReferralCount++
			r.s.users[id] = u
			r.s.bump(userKey(id))
		})
		return nil
	})
}

// Team -------------------------------------------------------------------------

type teamRepo struct{ s *Store }

func (r teamRepo) Add(ctx context.Context, member *models.TeamMember) error {
	return r.s.do(ctx, func(t *txn) error {
		t.read(teamKey(member.OwnerID))
		member.ID = member.OwnerID + ":" + member.MemberID
		for _, existing := range r.s.team[member.OwnerID] {
			if existing.MemberID == member.MemberID {
				*member = existing
				return nil
			}
		}
		member.JoinDate = r.s.now()
		stored := *member
		t.write(func() {
			r.s.team[stored.OwnerID] = append(r.s.team[stored.OwnerID], stored)
			r.s.bump(teamKey(stored.OwnerID))
		})
		return nil
	})
}

func (r teamRepo) FindByOwner(ctx context.Context, ownerID string) ([]*models.TeamMember, error) {
	members := []*models.TeamMember{}
	err := r.s.do(ctx, func(t *txn) error {
		t.read(teamKey(ownerID))
		for _, m := range r.s.team[ownerID] {
			m := m
			members = append(members, &m)
		}
		return nil
	})
	return members, err
}

// Investments ------------------------------------------------------------------

type investmentRepo struct{ s *Store }

func (r investmentRepo) Create(ctx context.Context, investment *models.Investment) error {
	return r.s.do(ctx, func(t *txn) error {
		investment.ID = newID()
		investment.StartDate = r.s.now()
		stored := *investment
		t.write(func() {
			r.s.investments = append(r.s.investments, stored)
			r.s.bump(investmentsIndexKey)
		})
		return nil
	})
}

func (r investmentRepo) FindByUserID(ctx context.Context, userID string) ([]*models.Investment, error) {
	investments := []*models.Investment{}
	err := r.s.do(ctx, func(t *txn) error {
		t.read(investmentsIndexKey)
		for _, inv := range r.s.investments {
			if inv.UserID == userID {
				inv := inv
				investments = append(investments, &inv)
			}
		}
		return nil
	})
	sort.SliceStable(investments, func(i, j int) bool {
		return investments[i].StartDate.After(investments[j].StartDate)
	})
	return investments, err
}

// Recharges --------------------------------------------------------------------

type rechargeRepo struct{ s *Store }

func (r rechargeRepo) Create(ctx context.Context, recharge *models.RechargeRequest) error {
	return r.s.do(ctx, func(t *txn) error {
		recharge.ID = newID()
		recharge.RequestDate = r.s.now()
		stored := *recharge
		t.write(func() {
			r.s.recharges = append(r.s.recharges, stored)
			r.s.bump(rechargesIndexKey, rechargeKey(stored.ID))
		})
		return nil
	})
}

func (r rechargeRepo) FindByID(ctx context.Context, id string) (*models.RechargeRequest, error) {
	var found *models.RechargeRequest
	err := r.s.do(ctx, func(t *txn) error {
		t.read(rechargeKey(id))
		for _, rc := range r.s.recharges {
			if rc.ID == id {
				rc := rc
				found = &rc
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r rechargeRepo) FindByUserID(ctx context.Context, userID string) ([]*models.RechargeRequest, error) {
	return r.filter(ctx, func(rc models.RechargeRequest) bool { return rc.UserID == userID })
}

func (r rechargeRepo) FindByStatus(ctx context.Context, status models.RequestStatus) ([]*models.RechargeRequest, error) {
	return r.filter(ctx, func(rc models.RechargeRequest) bool { return rc.Status == status })
}

func (r rechargeRepo) FindPendingByMomoNumber(ctx context.Context, momoNumber string, amount int64) ([]*models.RechargeRequest, error) {
	return r.filter(ctx, func(rc models.RechargeRequest) bool {
		return rc.Status == models.StatusPending && rc.MomoNumber == momoNumber && rc.Amount == amount
	})
}

// filter returns matches in insertion order, which is requestDate order.
func (r rechargeRepo) filter(ctx context.Context, match func(models.RechargeRequest) bool) ([]*models.RechargeRequest, error) {
	recharges := []*models.RechargeRequest{}
	err := r.s.do(ctx, func(t *txn) error {
		t.read(rechargesIndexKey)
		for _, rc := range r.s.recharges {
			if match(rc) {
				rc := rc
				recharges = append(recharges, &rc)
			}
		}
		return nil
	})
	return recharges, err
}

func (r rechargeRepo) UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) error {
	return r.s.do(ctx, func(t *txn) error {
		t.read(rechargeKey(id))
		for i, rc := range r.s.recharges {
			if rc.ID != id {
				continue
			}
			if rc.Status != from {
				return repositories.ErrStatusMismatch
			}
			settled := r.s.now()
			t.write(func() {
				r.s.recharges[i].Status = to
				r.s.recharges[i].SettledAt = &settled
				r.s.bump(rechargesIndexKey, rechargeKey(id))
			})
			return nil
		}
		return repositories.ErrNotFound
	})
}

func (r rechargeRepo) FindByReference(ctx context.Context, reference string) (*models.RechargeRequest, error) {
	var found *models.RechargeRequest
	err := r.s.do(ctx, func(t *txn) error {
		t.read(rechargesIndexKey)
		for _, rc := range r.s.recharges {
			if rc.Reference != "" && rc.Reference == reference {
				rc := rc
				found = &rc
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r rechargeRepo) SetReference(ctx context.Context, id, reference string) error {
	return r.s.do(ctx, func(t *txn) error {
		t.read(rechargesIndexKey)
		index := -1
		for i, rc := range r.s.recharges {
			if rc.Reference == reference && rc.ID != id {
				return repositories.ErrDuplicateReference
			}
			if rc.ID == id {
				index = i
			}
		}
		if index < 0 {
			return repositories.ErrNotFound
		}
		t.write(func() {
			r.s.recharges[index].Reference = reference
			r.s.bump(rechargesIndexKey, rechargeKey(id))
		})
		return nil
	})
}

// Withdrawals ------------------------------------------------------------------

type withdrawalRepo struct{ s *Store }

func (r withdrawalRepo) Create(ctx context.Context, withdrawal *models.WithdrawalRequest) error {
	return r.s.do(ctx, func(t *txn) error {
		withdrawal.ID = newID()
		withdrawal.RequestDate = r.s.now()
		stored := *withdrawal
		t.write(func() {
			r.s.withdrawals = append(r.s.withdrawals, stored)
			r.s.bump(withdrawalsIndexKey, withdrawalKey(stored.ID))
		})
		return nil
	})
}

func (r withdrawalRepo) FindByID(ctx context.Context, id string) (*models.WithdrawalRequest, error) {
	var found *models.WithdrawalRequest
	err := r.s.do(ctx, func(t *txn) error {
		t.read(withdrawalKey(id))
		for _, w := range r.s.withdrawals {
			if w.ID == id {
				w := w
				found = &w
				return nil
			}
		}
		return repositories.ErrNotFound
	})
	return found, err
}

func (r withdrawalRepo) FindByUserID(ctx context.Context, userID string) ([]*models.WithdrawalRequest, error) {
	return r.filter(ctx, func(w models.WithdrawalRequest) bool { return w.UserID == userID })
}

func (r withdrawalRepo) FindByStatus(ctx context.Context, status models.RequestStatus) ([]*models.WithdrawalRequest, error) {
	return r.filter(ctx, func(w models.WithdrawalRequest) bool { return w.Status == status })
}

func (r withdrawalRepo) filter(ctx context.Context, match func(models.WithdrawalRequest) bool) ([]*models.WithdrawalRequest, error) {
	withdrawals := []*models.WithdrawalRequest{}
	err := r.s.do(ctx, func(t *txn) error {
		t.read(withdrawalsIndexKey)
		for _, w := range r.s.withdrawals {
			if match(w) {
				w := w
				withdrawals = append(withdrawals, &w)
			}
		}
		return nil
	})
	return withdrawals, err
}

func (r withdrawalRepo) UpdateStatus(ctx context.Context, id string, from, to models.RequestStatus) error {
	return r.s.do(ctx, func(t *txn) error {
		t.read(withdrawalKey(id))
		for i, w := range r.s.withdrawals {
			if w.ID != id {
				continue
			}
			if w.Status != from {
				return repositories.ErrStatusMismatch
			}
			settled := r.s.now()
			t.write(func() {
				r.s.withdrawals[i].Status = to
				r.s.withdrawals[i].SettledAt = &settled
				r.s.bump(withdrawalsIndexKey, withdrawalKey(id))
			})
			return nil
		}
		return repositories.ErrNotFound
	})
}

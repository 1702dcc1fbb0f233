package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fundops/backoffice/internal/model"
)

func newFundService(t *testing.T) FundService {
	t.Helper()
	return NewFundService(newTestEnv(t).funds)
}

func TestFundServiceCreateAndGet(t *testing.T) {
	svc := newFundService(t)
	fund, err := svc.Create(context.Background(), CreateFundRequest{
		Name: "한빛 1호 투자조합", UnitAmount: 1000000,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	got, err := svc.Get(context.Background(), fund.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "한빛 1호 투자조합" {
		t.Errorf("Name = %q", got.Name)
	}
}

func TestFundServiceGetNotFound(t *testing.T) {
	svc := newFundService(t)
	if _, err := svc.Get(context.Background(), 404); !errors.Is(err, ErrFundNotFound) {
		t.Errorf("err = %v, want ErrFundNotFound", err)
	}
}

func TestFundServiceAddMemberRequiresFund(t *testing.T) {
	svc := newFundService(t)
	_, err := svc.AddMember(context.Background(), CreateMemberRequest{
		FundID: 404, Name: "홍길동", Role: model.RoleLP,
	})
	if !errors.Is(err, ErrFundNotFound) {
		t.Errorf("err = %v, want ErrFundNotFound", err)
	}
}

func TestFundServiceMemberRoundTrip(t *testing.T) {
	svc := newFundService(t)
	fund, err := svc.Create(context.Background(), CreateFundRequest{Name: "조합"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	member, err := svc.AddMember(context.Background(), CreateMemberRequest{
		FundID: fund.ID, Name: "홍길동", Role: model.RoleLP, Units: 5, Amount: 5000000,
	})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	members, err := svc.ListMembers(context.Background(), fund.ID)
	if err != nil {
		t.Fatalf("ListMembers failed: %v", err)
	}
	if len(members) != 1 || members[0].Name != "홍길동" {
		t.Errorf("members = %+v", members)
	}

	if err := svc.RemoveMember(context.Background(), member.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if err := svc.RemoveMember(context.Background(), member.ID); !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("err = %v, want ErrMemberNotFound", err)
	}
}

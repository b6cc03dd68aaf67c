package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	orders    repo.OrderRepository
	addresses repo.AddressRepository
	products  repo.ProductRepository
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	addresses repo.AddressRepository,
	products repo.ProductRepository,
	auditRepo repo.AuditLogRepository,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:        tx,
		orders:    orders,
		addresses: addresses,
		products:  products,
		auditRepo: auditRepo,
	}
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

// 管理者が直接作る注文。Statusを省略するとPending
type AdminCreateOrderInput struct {
	UserID    int64  `json:"user_id"`
	AddressID int64  `json:"address_id"`
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Status    string `json:"status"`
}

type AuditLogOutput struct {
	Items []model.AuditLog `json:"items"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if err := pageParams(f.Page, f.Limit); err != nil {
		return OrderListOutput{}, err
	}
	if f.Status != "" {
		if _, ok := model.ParseOrderStatus(f.Status); !ok {
			return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}

	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return OrderListOutput{}, dbError(err)
	}
	return toOrderListOutput(orders, total, f.Page, f.Limit), nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, dbError(err)
	}
	return toOrderOutput(o), nil
}

func (u *AdminOrderUsecase) Create(ctx context.Context, actorAdminUserID int64, in AdminCreateOrderInput) (OrderOutput, error) {
	if actorAdminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.UserID <= 0 || in.AddressID <= 0 || in.ProductID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "user_id, address_id and product_id are required")
	}
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	status := model.OrderStatusPending
	if s := strings.TrimSpace(in.Status); s != "" {
		st, ok := model.ParseOrderStatus(s)
		if !ok {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		status = st
	}

	//住所は注文するユーザーのものに限る
	addr, err := u.addresses.FindByID(ctx, in.AddressID)
	if err != nil {
		return OrderOutput{}, dbError(err)
	}
	if addr.UserID != in.UserID {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "address does not belong to user")
	}
	p, err := u.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return OrderOutput{}, dbError(err)
	}

	o, err := u.orders.Create(ctx, model.Order{
		UserID:    in.UserID,
		AddressID: addr.ID,
		ProductID: p.ID,
		Quantity:  in.Quantity,
		Status:    status,
	})
	if err != nil {
		return OrderOutput{}, dbError(err)
	}
	o.Address = addr
	o.Product = p
	return toOrderOutput(o), nil
}

// ステータス更新。前進のみ（飛ばしは可）、キャンセルは終端以外から。
// 変更したら監査ログを同じトランザクションで書く。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus, ok := model.ParseOrderStatus(strings.TrimSpace(in.Status))
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}
		if !o.Status.CanTransitionTo(newStatus) {
			return NewHTTPError(http.StatusBadRequest, "cannot change status from "+string(o.Status)+" to "+string(newStatus))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return err
		}

		beforeJSON, _ := json.Marshal(map[string]string{"status": string(o.Status)})
		afterJSON, _ := json.Marshal(map[string]string{"status": string(newStatus)})
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(beforeJSON),
			AfterJSON:    string(afterJSON),
			CreatedAt:    time.Now(),
		})
	})
	if err != nil {
		return txError(err)
	}
	return nil
}

func (u *AdminOrderUsecase) ListAuditLogs(ctx context.Context, f repo.AuditLogFilter) (AuditLogOutput, error) {
	if f.Limit < 1 || f.Limit > 100 {
		return AuditLogOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if f.Offset < 0 {
		return AuditLogOutput{}, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}
	logs, err := u.auditRepo.List(ctx, f)
	if err != nil {
		return AuditLogOutput{}, dbError(err)
	}
	if logs == nil {
		logs = []model.AuditLog{}
	}
	return AuditLogOutput{Items: logs}, nil
}

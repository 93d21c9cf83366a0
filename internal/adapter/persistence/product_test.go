package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"

	marketDomain "smartfarm-credit/internal/domain/market"
	userDomain "smartfarm-credit/internal/domain/user"
)

func makeProduct(farmerID uint64, crop, qty, price string) *marketDomain.Product {
	return &marketDomain.Product{
		FarmerID:     farmerID,
		ProductName:  crop + " lot",
		CropType:     crop,
		Quantity:     dec(qty),
		Unit:         "kg",
		PricePerUnit: dec(price),
		Location:     "Nakuru",
		Status:       marketDomain.ProductAvailable,
	}
}

func TestProductRepository_GetByID_JoinsFarmerName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	farmer := seedUser(t, db, "farmer@farm.test", userDomain.RoleFarmer)
	repo := NewProductRepository(db)

	p := makeProduct(farmer.ID, "maize", "100", "0.50")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FarmerName != farmer.Name {
		t.Fatalf("farmer name = %q, want %q", got.FarmerName, farmer.Name)
	}
	if _, err := repo.GetByID(ctx, 9999); !errors.Is(err, marketDomain.ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_ListAvailable_Filters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	farmer := seedUser(t, db, "farmer@farm.test", userDomain.RoleFarmer)
	repo := NewProductRepository(db)

	_ = repo.Create(ctx, makeProduct(farmer.ID, "maize", "100", "0.50"))
	_ = repo.Create(ctx, makeProduct(farmer.ID, "beans", "50", "2.00"))
	sold := makeProduct(farmer.ID, "maize", "0", "0.40")
	sold.Status = marketDomain.ProductSold
	_ = repo.Create(ctx, sold)

	all, _ := repo.ListAvailable(ctx, marketDomain.ProductFilter{})
	if len(all) != 2 {
		t.Fatalf("available len=%d, want 2", len(all))
	}
	maize, _ := repo.ListAvailable(ctx, marketDomain.ProductFilter{CropType: "maize"})
	if len(maize) != 1 {
		t.Fatalf("maize len=%d, want 1", len(maize))
	}
	minP := dec("1.00")
	pricey, _ := repo.ListAvailable(ctx, marketDomain.ProductFilter{MinPrice: &minP})
	if len(pricey) != 1 || pricey[0].CropType != "beans" {
		t.Fatalf("min price filter = %+v", pricey)
	}

	mine, _ := repo.ListByFarmer(ctx, farmer.ID)
	n, _ := repo.CountByFarmer(ctx, farmer.ID)
	if len(mine) != 3 || n != 3 {
		t.Fatalf("farmer listings len=%d count=%d, want 3", len(mine), n)
	}
}

func TestProductRepository_Reserve(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	p := makeProduct(1, "maize", "10", "1")
	_ = repo.Create(ctx, p)

	ok, err := repo.Reserve(ctx, p.ID, dec("4"))
	if err != nil || !ok {
		t.Fatalf("Reserve(4) = %v, %v", ok, err)
	}
	ok, _ = repo.Reserve(ctx, p.ID, dec("7"))
	if ok {
		t.Fatal("Reserve(7) should fail with 6 left")
	}
	got, _ := repo.GetByID(ctx, p.ID)
	if got.Quantity.StringFixed(0) != "6" {
		t.Fatalf("quantity = %s, want 6", got.Quantity)
	}
}

func TestProductRepository_Reserve_Concurrent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	p := makeProduct(1, "maize", "5", "1")
	_ = repo.Create(ctx, p)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.Reserve(ctx, p.ID, dec("1"))
			if err != nil {
				t.Errorf("Reserve: %v", err)
				return
			}
			if ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 5 {
		t.Fatalf("wins = %d, want 5", wins)
	}
}

func TestProductRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	p := makeProduct(1, "maize", "10", "1")
	_ = repo.Create(ctx, p)
	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, marketDomain.ErrProductNotFound) {
		t.Fatalf("second Delete: want ErrProductNotFound, got %v", err)
	}
}

func TestOrderRepository_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	products := NewProductRepository(db)
	orders := NewOrderRepository(db)

	p := makeProduct(1, "beans", "10", "2.00")
	_ = products.Create(ctx, p)

	o := &marketDomain.Order{
		OrderNo:         ulid.Make().String(),
		BuyerID:         8,
		ProductID:       p.ID,
		Quantity:        dec("3"),
		TotalPrice:      dec("6.00"),
		DeliveryAddress: "Market St 1",
		Status:          marketDomain.OrderPending,
		PaymentStatus:   marketDomain.PaymentPending,
		Product:         p,
	}
	if err := orders.Create(ctx, o); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := orders.ListByBuyer(ctx, 8)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListByBuyer len=%d err=%v", len(list), err)
	}
	if list[0].Product == nil || list[0].Product.CropType != "beans" {
		t.Fatalf("product not preloaded: %+v", list[0])
	}
	n, _ := orders.CountByBuyer(ctx, 8)
	if n != 1 {
		t.Fatalf("CountByBuyer = %d", n)
	}
}

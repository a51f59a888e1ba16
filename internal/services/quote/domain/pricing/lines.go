package pricing

import "fmt"

func (e *Engine) addFood(b *lineBuilder, spec EventSpec) error {
	guests := spec.GuestCount
	t, c := e.cfg.Tables, e.cfg.Costs
	byTable := fmt.Sprintf("table: %d guests", guests)

	for _, food := range []struct {
		key, name string
		table     StyleTable
		tableName string
	}{
		{"veg_fruit", vegetablesLineName, t.Vegetables, "vegetables"},
		{"dry_goods_cheese", "Dry goods and cheese", t.DryGoods, "dry goods"},
		{"bread_pastries", "Bread and pastries", t.Bread, "bread"},
	} {
		cost, err := mustLookup(food.tableName, food.table, guests).Column(spec.CulinaryStyle)
		if err != nil {
			return err
		}
		b.add(CategoryFood, food.key, food.name, 1, cost, byTable)
	}

	litres, err := mustLookup("olive oil", t.OliveOilLitres, guests).Column(spec.CulinaryStyle)
	if err != nil {
		return err
	}
	b.add(CategoryFood, "olive_oil", "Olive oil", litres, c.OliveOilPerLitre, num(litres)+" litres from table")

	g := float64(guests)
	if hasMeat(spec.CulinaryStyle) {
		b.add(CategoryFood, "meat", "Meat", g, c.MeatPortionKg*c.MeatPerKg, portionRationale(c.MeatPortionKg, c.MeatPerKg))
	}
	if hasFish(spec.CulinaryStyle) {
		if spec.FishPlacement != FishPlacementMains {
			b.add(CategoryFood, "fish_starters", "Fish (starters)", g,
				c.FishStarterPortionKg*c.FishStarterPerKg, portionRationale(c.FishStarterPortionKg, c.FishStarterPerKg))
		}
		if spec.FishPlacement != FishPlacementStarters {
			b.add(CategoryFood, "fish_mains", "Fish (mains)", g,
				c.FishMainPortionKg*c.FishMainPerKg, portionRationale(c.FishMainPortionKg, c.FishMainPerKg))
		}
	}
	if spec.IncludeNightStation && spec.NightStationUnitCost > 0 {
		b.add(CategoryFood, "night_station", "Night station (per-guest add-on)", g, spec.NightStationUnitCost, "manual per-guest add-on")
	}
	return nil
}

func (e *Engine) addLabor(b *lineBuilder, spec EventSpec) error {
	guests := spec.GuestCount
	t, c, th := e.cfg.Tables, e.cfg.Costs, e.cfg.Thresholds

	kitchenRow := mustLookup("kitchen staff", t.KitchenStaff, guests)
	kitchen, err := kitchenRow.Column(spec.ServingFormat)
	if err != nil {
		return err
	}
	b.add(CategoryLabor, "kitchen_workers", "Kitchen workers", kitchen, c.KitchenWorker,
		fmt.Sprintf("table: up to %d guests", kitchenRow.MaxGuests))

	floorRow := mustLookup("floor staff", t.FloorStaff, guests)
	floor, err := floorRow.Column(spec.ServingFormat)
	if err != nil {
		return err
	}
	b.add(CategoryLabor, "floor_staff", "Waiters/floor staff", floor, c.Waiter,
		fmt.Sprintf("table: up to %d guests", floorRow.MaxGuests))

	b.add(CategoryLabor, "dishwasher", "Dishwasher", 1, c.Dishwasher, "fixed per event")
	b.add(CategoryLabor, "kitchen_manager", "Kitchen manager", 1, c.KitchenManager, "fixed per event")
	b.add(CategoryLabor, "logistics_manager", "Logistics manager", 1, c.LogisticsManager, "fixed per event")

	if guests > th.LogisticsWorkerAbove {
		b.add(CategoryLabor, "logistics_worker", "Logistics worker", 1, c.LogisticsWorker,
			fmt.Sprintf("above %d guests", th.LogisticsWorkerAbove))
	}

	managers, why := 1.0, "base"
	if guests > th.SeniorEventManagerAbove {
		managers, why = th.SeniorEventManagerQty, fmt.Sprintf("above %d guests", th.SeniorEventManagerAbove)
	}
	b.add(CategoryLabor, "event_manager", "Event manager", managers, c.EventManager, why)

	if spec.IncludeClearingCrew {
		crew := ceilDiv(guests, th.GuestsPerClearingStaff)
		b.add(CategoryLabor, "clearing_crew", "Clearing crew", float64(crew), c.ClearingStaff,
			fmt.Sprintf("1 per %d guests", th.GuestsPerClearingStaff))
	}
	return nil
}

func (e *Engine) addLogistics(b *lineBuilder, spec EventSpec) error {
	c := e.cfg.Costs

	switch spec.Kosher {
	case KosherCertificate:
		cost, why := c.KosherCertificateMediumLarge, "kosher add-on, medium/large event"
		if spec.EventScale == EventScaleSmall {
			cost, why = c.KosherCertificateSmall, "kosher add-on, small event"
		}
		b.add(CategoryLogistics, "kosher_certificate", "Kosher certificate (fee and handling)", 1, cost, why)
	case KosherSupervisor:
		cost, why := c.KosherSupervisorBase, "supervisor add-on (base rate)"
		if spec.Distance == DistanceSpecial {
			cost, why = c.KosherSupervisorFar, "supervisor add-on (incl. distance surcharge)"
		}
		b.add(CategoryLabor, "kosher_supervisor", "Dedicated kosher supervisor", 1, cost, why)
	case KosherNone:
	default:
		return unknownKosherError(string(spec.Kosher))
	}

	var truck float64
	switch spec.Distance {
	case DistanceClose:
		truck = c.TruckClose
	case DistanceFar:
		truck = c.TruckFar
	case DistanceSpecial:
		truck = c.TruckSpecial
	default:
		return unknownDistanceError(string(spec.Distance))
	}
	km, err := e.cfg.Distances.Km(spec.Distance)
	if err != nil {
		return err
	}
	b.add(CategoryRental, "delivery_"+string(spec.Distance), fmt.Sprintf("Equipment delivery (%s)", spec.Distance), 1, truck, "equipment delivery")
	b.add(CategoryLogistics, "truck_fuel", "Truck fuel", km, c.FuelPerKm, num(km)+" km")

	vehicles, err := mustLookup("staff vehicles", e.cfg.Tables.StaffVehicles, spec.GuestCount).Column(spec.ServingFormat)
	if err != nil {
		return err
	}
	b.add(CategoryLogistics, "staff_travel", "Staff travel reimbursement (vehicles)", vehicles, km*c.StaffTravelPerKm,
		fmt.Sprintf("%s vehicles x %s km x %s per km", num(vehicles), num(km), num(c.StaffTravelPerKm)))
	return nil
}

func (e *Engine) addEquipment(b *lineBuilder, spec EventSpec) error {
	guests := spec.GuestCount
	t, c, th := e.cfg.Tables, e.cfg.Costs, e.cfg.Thresholds

	if spec.ServingFormat == ServingFormatBuffet {
		stations := mustLookup("serving stations", t.ServingStations, guests).Value
		b.add(CategoryRental, "serving_stations", "Serving stations", stations, c.Station, "buffet station table")
	} else {
		stations, err := mustLookup("end stations", t.EndStations, guests).Column(spec.ServingFormat)
		if err != nil {
			return err
		}
		b.add(CategoryRental, "end_stations", "End stations", stations, c.Station, "station table")
	}

	b.add(CategoryRental, "fridges", "Fridge", mustLookup("fridges", t.Fridges, guests).Value, c.Fridge, "by guest count")
	if guests > th.OvenAbove {
		b.add(CategoryRental, "industrial_oven", "Industrial oven", 1, c.Oven, fmt.Sprintf("above %d guests", th.OvenAbove))
	}
	if guests > th.WarmerAbove {
		b.add(CategoryRental, "warming_cabinet", "Warming cabinet", 1, c.Warmer, fmt.Sprintf("above %d guests", th.WarmerAbove))
	}
	b.add(CategoryRental, "work_tables", "Work tables", mustLookup("work tables", t.WorkTables, guests).Value, c.WorkTable, "from table")
	b.add(CategoryRental, "gas_canisters", "Gas canisters", mustLookup("gas canisters", t.GasCanisters, guests).Value, c.GasCanister, "from table")
	b.add(CategoryRental, "coal", "Coal", 1, mustLookup("coal cost", t.CoalCost, guests).Value, "coal package from table")

	for _, rule := range e.cfg.ServingWare {
		qty, why := rule.Quantity(spec.ServingFormat, guests)
		b.add(CategoryRental, rule.Key, rule.Name, qty, rule.UnitPrice, why)
	}

	disposables := c.DisposablesLarge
	switch {
	case guests <= th.DisposablesSmallMax:
		disposables = c.DisposablesSmall
	case guests <= th.DisposablesMediumMax:
		disposables = c.DisposablesMedium
	}
	b.add(CategoryRental, "disposables", "Kitchen disposables", 1, disposables, "by event size")
	return nil
}

func (e *Engine) addExtras(b *lineBuilder, spec EventSpec) error {
	for _, item := range spec.ExtraItems {
		if item.Price > 0 {
			b.add(CategoryExtras, extraLineKey, item.Name, 1, item.Price, "special add-on")
		}
	}
	return nil
}

func hasMeat(style CulinaryStyle) bool {
	return style == CulinaryStyleAll || style == CulinaryStyleMeatNoFish
}

func hasFish(style CulinaryStyle) bool {
	return style == CulinaryStyleAll || style == CulinaryStylePescatarian
}

func portionRationale(portionKg, perKg float64) string {
	return fmt.Sprintf("%s kg per guest x %s per kg", num(portionKg), num(perKg))
}

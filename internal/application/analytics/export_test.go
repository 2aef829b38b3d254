package analytics

import "time"

func (uc *DashboardUseCase) SetNow(now func() time.Time) { uc.now = now }

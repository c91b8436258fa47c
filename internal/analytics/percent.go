package analytics

import (
	"sort"
)

// Share 某个分类在总量中的占比
type Share struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Percent  int    `json:"percent"`
}

// Percentages 把计数转换为整数百分比，使用最大余数法保证总和恰好为 100。
// 没有数据时返回空切片。
func Percentages(counts map[string]int64) []Share {
	var total int64
	for _, c := range counts {
		total += c
	}
	shares := make([]Share, 0, len(counts))
	if total <= 0 {
		return shares
	}

	type item struct {
		share     Share
		remainder int64
	}
	items := make([]item, 0, len(counts))
	assigned := 0
	for category, c := range counts {
		if c <= 0 {
			continue
		}
		floor := c * 100 / total
		items = append(items, item{
			share:     Share{Category: category, Count: c, Percent: int(floor)},
			remainder: c * 100 % total,
		})
		assigned += int(floor)
	}

	// 余数大的优先补齐，余数相同时按计数、名称排序保证结果确定
	sort.Slice(items, func(i, j int) bool {
		if items[i].remainder != items[j].remainder {
			return items[i].remainder > items[j].remainder
		}
		if items[i].share.Count != items[j].share.Count {
			return items[i].share.Count > items[j].share.Count
		}
		return items[i].share.Category < items[j].share.Category
	})
	for i := 0; assigned < 100; i++ {
		items[i%len(items)].share.Percent++
		assigned++
	}

	for _, it := range items {
		shares = append(shares, it.share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Percent != shares[j].Percent {
			return shares[i].Percent > shares[j].Percent
		}
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}

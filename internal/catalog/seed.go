package catalog

import (
	"github.com/hakvenlong/e-commerce-Final/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// launchPrice is the flat promo price every garment currently sells at.
var launchPrice = decimal.NewFromInt(100).Div(decimal.NewFromInt(4060))

func usd(amount decimal.Decimal) domain.Money {
	return domain.NewMoney(amount, currency.USD)
}

// Seed returns the launch assortment for the memory backend and the
// sqlite seed migration.
func Seed() []*domain.Product {
	return []*domain.Product{
		{ID: 1, Name: "Oversized Tee Black", Brand: "White Fox", Price: usd(launchPrice), ImageURL: "https://whitefoxboutique.com/cdn/shop/files/white-fox-ready-to-go-oversized-tee-ready-to-go-lounge-shorts-black-15.10.25-01_1024x1024@2x.progressive.jpg?v=1762398368", Description: "Super soft oversized black t-shirt with a relaxed fit. Perfect for everyday casual wear or lounging.", Categories: "clothing,tshirt,oversized,womens", InStock: true},
		{ID: 2, Name: "Topman relaxed for Going Nowhere print t-shirt in white", Brand: "Topman", Price: usd(launchPrice), ImageURL: "https://images.asos-media.com/products/topman-relaxed-for-going-nowhere-print-t-shirt-in-white/209283505-2?$n_320w$&wid=317&fit=constrain", Description: "Relaxed-fit white cotton t-shirt featuring \"Going Nowhere\" chest print. Classic crew neck and short sleeves.", Categories: "clothing,tshirt,graphic,mens", InStock: true},
		{ID: 3, Name: "BDG Bonfire Solid Zip-Up Hoodie Sweatshirt", Brand: "BDG", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/90061540_001_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Cozy black full-zip hoodie with drawstring hood and kangaroo pocket. Made from soft fleece for ultimate comfort.", Categories: "clothing,hoodie,zipup,unisex", InStock: true},
		{ID: 4, Name: "BDG Printed Fleece Quarter Zip Sweatshirt", Brand: "BDG", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/101845246_049_c2?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Quarter-zip fleece pullover with all-over abstract print. Stand collar and relaxed fit for easy layering.", Categories: "clothing,sweatshirt,quarterzip,unisex", InStock: true},
		{ID: 5, Name: "Rhythm High Plains Quarter-Zip Sweatshirt", Brand: "Rhythm", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/105379440_016_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Earthy-toned quarter-zip sweatshirt with woven label detail. Heavyweight cotton blend perfect for cooler days.", Categories: "clothing,sweatshirt,quarterzip,mens", InStock: true},
		{ID: 6, Name: "Standard Cloth Jump Shot Hoodie Sweatshirt", Brand: "Standard Cloth", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/91856542_062_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Vintage-inspired blue hoodie with \"Jump Shot\" basketball graphic on front. Soft fleece lining and relaxed fit.", Categories: "clothing,hoodie,graphic,mens", InStock: true},
		{ID: 7, Name: "True Religion Applique Shrunken Flannel Zip-Up Hoodie", Brand: "True Religion", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/101409399_018_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Cropped flannel zip-up hoodie with embroidered horseshoe logo. Plaid pattern and raw hem details.", Categories: "clothing,hoodie,flannel,womens", InStock: true},
		{ID: 8, Name: "Nola Oversized Off-The-Shoulder Sweater", Brand: "Urban Outfitters", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/100256221_012_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Slouchy off-the-shoulder knit sweater in cream color. Ribbed cuffs and hem for a cozy oversized look.", Categories: "clothing,sweater,offshoulder,womens", InStock: true},
		{ID: 9, Name: "Out From Under Clarity Cozy Knit Off-The-Shoulder", Brand: "Out From Under", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/94325602_011_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Ultra-soft off-the-shoulder cropped sweater in light beige. Perfect layering piece with a relaxed fit.", Categories: "clothing,sweater,crop,womens", InStock: true},
		{ID: 10, Name: "BDG Kayla Cocoon Low-Rise Jean", Brand: "BDG", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/100324151_005_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Relaxed cocoon-fit low-rise jeans in light wash denim. Barrel leg silhouette with slight tapering at ankle.", Categories: "clothing,jeans,lowrise,womens", InStock: true},
		{ID: 11, Name: "ReMADE By UO Painted Levis Slouchy Fit Jean", Brand: "ReMADE by UO", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/105092589_009_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "One-of-a-kind hand-painted vintage Levi's jeans. Baggy slouchy fit with unique splatter paint design.", Categories: "clothing,jeans,vintage,unisex", InStock: true},
		{ID: 12, Name: "ReMADE By UO Bleached Flannel Shirt", Brand: "ReMADE by UO", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/102377942_000_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Upcycled flannel shirt with custom bleach tie-dye effect. Each piece is unique and perfectly oversized.", Categories: "clothing,shirt,flannel,unisex", InStock: true},
		{ID: 13, Name: "Levi's Plaid Wool Shirt Jacket", Brand: "Levi's", Price: usd(launchPrice), ImageURL: "https://images.urbndata.com/is/image/UrbanOutfitters/101033504_037_b?$xlarge$&fit=constrain&fmt=webp&qlt=80&wid=960", Description: "Heavyweight wool-blend plaid shacket with button front and dual chest pockets. Ideal outerwear layer.", Categories: "clothing,shacket,jacket,unisex", InStock: true},
	}
}

package bot

// Fixed customer and administrator texts.
const (
	textNotAdmin      = "❌ Siz admin emassiz!"
	textAddUsage      = "❌ Foydalanish: /add Nomi Narxi"
	textAddFullUsage  = "❌ Foydalanish: /add_full Nomi Narxi Kategoriya Rasm(- bo‘lsa yo‘q) Tavsif"
	textItemMissing   = "❌ Taom topilmadi!"
	textCartEmpty     = "❌ Savatchangiz bo‘sh!"
	textOrderAccepted = "✅ Buyurtmangiz qabul qilindi! Tez orada tayyor bo‘ladi."
	textGenericError  = "❌ Xatolik yuz berdi, qaytadan urinib ko‘ring."
	textChooseItems   = "Taomni tanlang, so‘ng «✅ Buyurtmani tasdiqlash» tugmasini bosing."

	buttonMiniApp = "📋 Menyu (mini-app)"
	buttonMenu    = "📋 Menyu"
	buttonConfirm = "✅ Buyurtmani tasdiqlash"
	buttonAdmin   = "🛠 Admin panel"

	textStart       = "Salom 👋\n🪑 Stol: <b>%s</b>\nBuyurtma berish uchun menyuni tanlang:"
	textAddedToCart = "➕ %s savatchaga qo‘shildi. Jami: %d so‘m"
	textAdminStats  = "🛠 Admin panel\n\n📊 Bugun: %d ta buyurtma, %d so‘m"
	textDeepLink    = "\n🔗 Stol havolasi: https://t.me/%s?start=stol1"
)

// Callback data prefixes.
const (
	cbMenuPrefix  = "menu:"
	cbOrderPrefix = "order:"
	cbConfirm     = "confirm_order"

	// Telegram rejects callback data longer than 64 bytes.
	maxCallbackData = 64
)

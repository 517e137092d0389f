package chat

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var thaiPrinter = message.NewPrinter(language.Thai)

// baht renders an amount with thousands separators and two decimals,
// e.g. 12345.5 -> "12,345.50".
func baht(v float64) string {
	return thaiPrinter.Sprintf("%.2f", v)
}

// kg renders a weight the same way as amounts.
func kg(v float64) string {
	return thaiPrinter.Sprintf("%.2f", v)
}

const (
	replyNoData    = "ไม่พบข้อมูล"
	replyDataError = "ขออภัย เกิดข้อผิดพลาดในการค้นหา กรุณาลองใหม่อีกครั้ง"

	replyGreeting = "สวัสดีครับ ผมคือผู้ช่วยบันทึกสวนปาล์ม ถามเรื่องรายได้ กำไร การเก็บเกี่ยว ปุ๋ย หรือบันทึกได้เลยครับ"

	replyHelp = `ผมช่วยตอบคำถามเหล่านี้ได้ครับ
- รายได้ / กำไร / ค่าใช้จ่าย เช่น "กำไรเดือนนี้เท่าไหร่"
- น้ำหนักผลผลิต ราคาเฉลี่ย จำนวนครั้งที่เก็บเกี่ยว
- "เก็บเกี่ยวครั้งถัดไปเมื่อไหร่"
- "ใส่ปุ๋ยล่าสุดเมื่อไหร่"
- "ต้นไหนให้ผลผลิตสูงสุด"
- ค้นหาบันทึก เช่น "บันทึกเกี่ยวกับปั๊มน้ำ"
ระบุช่วงเวลาได้ เช่น วันนี้ เดือนนี้ เดือนที่แล้ว ปีนี้ หรือ "เดือนสิงหาคม 2568"`
)
